package app

import (
	"soins-suite-services/internal/app/bootstrap"
	"soins-suite-services/internal/app/config"
	"soins-suite-services/internal/infrastructure/database"
	"soins-suite-services/internal/infrastructure/discovery"
	"soins-suite-services/internal/infrastructure/logger"
	"soins-suite-services/internal/modules/order"
	"soins-suite-services/internal/modules/patient"
	"soins-suite-services/internal/shared/middleware"

	"go.uber.org/fx"
)

// NewOrderServiceModule graphe Fx du service commande
func NewOrderServiceModule(cfg *config.Config) fx.Option {
	return newServiceModule(cfg, order.Module(cfg))
}

// NewPatientServiceModule graphe Fx du service patient
func NewPatientServiceModule(cfg *config.Config) fx.Option {
	return newServiceModule(cfg, patient.Module(cfg))
}

func newServiceModule(cfg *config.Config, business fx.Option) fx.Option {
	options := []fx.Option{
		// Configuration (chargée avant la construction du graphe)
		fx.Supply(cfg),

		// Infrastructure
		database.Module(cfg),
		logger.Module,

		// Middlewares partagés (après infrastructure, avant modules métier)
		middleware.Module,

		// Router
		fx.Provide(NewRouter),

		// Modules métier
		business,
	}

	// Bootstrap du schéma avant l'ouverture du serveur
	if cfg.UsesPostgres() {
		options = append(options, bootstrap.Module)
	}

	options = append(options,
		// Application
		fx.Provide(NewApplication),
		fx.Invoke((*Application).Start),

		// Annuaire en dernier: l'instance n'est annoncée qu'une fois le serveur à l'écoute
		discovery.Module(cfg),
	)

	return fx.Options(options...)
}
