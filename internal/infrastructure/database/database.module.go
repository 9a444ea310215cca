package database

import (
	"go.uber.org/fx"

	"soins-suite-services/internal/app/config"
	"soins-suite-services/internal/infrastructure/database/mongodb"
	"soins-suite-services/internal/infrastructure/database/postgres"
	"soins-suite-services/internal/infrastructure/database/redis"
)

// Module compose les clients database nécessaires selon la configuration du service
func Module(cfg *config.Config) fx.Option {
	options := []fx.Option{}

	if cfg.UsesPostgres() {
		options = append(options,
			fx.Provide(config.NewPostgresConfig),
			postgres.Module,
		)
	}

	if cfg.Redis.Enabled {
		options = append(options,
			fx.Provide(config.NewRedisConfig),
			redis.Module,
		)
	}

	if cfg.Storage.Driver == config.StorageMongoDB {
		options = append(options,
			fx.Provide(config.NewMongoConfig),
			mongodb.Module,
		)
	}

	return fx.Options(options...)
}
