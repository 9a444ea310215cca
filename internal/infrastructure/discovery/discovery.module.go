package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"soins-suite-services/internal/app/config"
	"soins-suite-services/internal/infrastructure/database/redis"
)

// Module fournit l'annuaire; dynamique (Redis + heartbeat) si le registre est activé
func Module(cfg *config.Config) fx.Option {
	if !cfg.Registry.Enabled {
		return fx.Options(
			fx.Provide(NewStaticRegistry),
		)
	}

	return fx.Options(
		fx.Provide(NewRedisRegistry),
		fx.Invoke(RegisterLifecycle),
	)
}

// NewStaticRegistry annuaire construit uniquement depuis la configuration
func NewStaticRegistry(cfg *config.Config) *Registry {
	return NewRegistry(cfg.Registry.StaticServices, nil, cfg.Registry.TTL)
}

// NewRedisRegistry annuaire partagé via Redis
func NewRedisRegistry(cfg *config.Config, client *redis.Client) *Registry {
	return NewRegistry(cfg.Registry.StaticServices, client, cfg.Registry.TTL)
}

// RegisterLifecycle annonce l'instance courante et entretient son TTL jusqu'à l'arrêt
func RegisterLifecycle(lc fx.Lifecycle, cfg *config.Config, registry *Registry, logger *slog.Logger) {
	self := Instance{
		ServiceName: cfg.Service.Name,
		InstanceID:  cfg.Service.InstanceID,
		BaseURL:     cfg.Service.AdvertiseURL,
	}

	heartbeatCtx, stopHeartbeat := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := registry.Register(ctx, self); err != nil {
				return err
			}
			fmt.Printf("[REGISTRY] ✅ Instance %s/%s annoncée sur %s\n", self.ServiceName, self.InstanceID, self.BaseURL)

			go func() {
				defer close(done)
				heartbeat(heartbeatCtx, registry, self, cfg.Registry.HeartbeatInterval, logger)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopHeartbeat()
			<-done

			fmt.Printf("[REGISTRY] 🛑 Retrait instance %s/%s\n", self.ServiceName, self.InstanceID)
			return registry.Deregister(ctx, self)
		},
	})
}

func heartbeat(ctx context.Context, registry *Registry, self Instance, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := registry.Register(ctx, self); err != nil && ctx.Err() == nil {
				logger.Warn("heartbeat annuaire échoué", "instance_id", self.InstanceID, "error", err)
			}
		}
	}
}
