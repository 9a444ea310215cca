package main

import (
	"context"
	"log"

	"soins-suite-services/internal/app"
	"soins-suite-services/internal/app/config"

	"go.uber.org/fx"
)

func main() {
	cfg, err := config.NewConfig(config.PatientService)
	if err != nil {
		log.Fatalf("[CONFIG] ❌ %v", err)
	}

	fx.New(
		app.NewPatientServiceModule(cfg),
		fx.Invoke(func(lifecycle fx.Lifecycle) {
			lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.Println("Patient Service starting...")
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Println("Patient Service stopping...")
					return nil
				},
			})
		}),
	).Run()
}
