package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"soins-suite-services/internal/app/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Application serveur HTTP d'un service, piloté par le lifecycle Fx
type Application struct {
	config *config.Config
	router *gin.Engine
	server *http.Server
}

// NewApplication crée une nouvelle instance de l'application
func NewApplication(cfg *config.Config, router *gin.Engine) *Application {
	return &Application{
		config: cfg,
		router: router,
	}
}

// Start démarre l'application  avec lifecycle Fx
func (a *Application) Start(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverConfig := a.config.GetServer()

			a.server = &http.Server{
				Addr:         fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
				Handler:      a.router,
				ReadTimeout:  serverConfig.ReadTimeout,
				WriteTimeout: serverConfig.WriteTimeout,
			}

			// Ouverture du port avant l'annonce dans l'annuaire
			listener, err := net.Listen("tcp", a.server.Addr)
			if err != nil {
				return fmt.Errorf("ouverture %s échouée: %w", a.server.Addr, err)
			}

			// Démarrage serveur en goroutine
			go func() {
				fmt.Printf("[SERVER] 🚀 %s à l'écoute sur %s\n", a.config.Service.Name, a.server.Addr)
				if err := a.server.Serve(listener); err != nil && err != http.ErrServerClosed {
					fmt.Printf("[SERVER] ❌ Arrêt inattendu du serveur: %v\n", err)
				}
			}()

			fmt.Printf("[SERVER] ✅ Serveur HTTP initialisé (env: %s)\n", a.config.Environment)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			fmt.Printf("[SERVER] 🛑 Arrêt serveur HTTP\n")

			// Timeout pour arrêt graceful
			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := a.server.Shutdown(shutdownCtx); err != nil {
				fmt.Printf("[SERVER] ⚠️ Arrêt forcé: %v\n", err)
				return err
			}

			fmt.Printf("[SERVER] ✅ Serveur arrêté proprement\n")
			return nil
		},
	})
}
