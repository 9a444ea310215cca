package patient

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"soins-suite-services/internal/app/bootstrap"
	"soins-suite-services/internal/app/config"
	"soins-suite-services/internal/modules/patient/clients"
	"soins-suite-services/internal/modules/patient/controllers"
	"soins-suite-services/internal/modules/patient/queries"
	"soins-suite-services/internal/modules/patient/repositories"
	"soins-suite-services/internal/modules/patient/services"
)

// Module service patient; stockage et compteur d'identifiants selon la configuration
func Module(cfg *config.Config) fx.Option {
	return fx.Options(
		repositoryModule(cfg.Storage.Driver),
		idGeneratorModule(cfg.Redis.Enabled),
		fx.Provide(fx.Annotate(clients.NewOrderClient, fx.As(new(services.OrderFetcher)))),
		fx.Provide(services.NewPatientService),
		fx.Provide(controllers.NewPatientController),
		fx.Invoke(RegisterPatientRoutes),
	)
}

func repositoryModule(driver string) fx.Option {
	if driver == config.StorageMemory {
		return fx.Provide(
			fx.Annotate(repositories.NewMemoryPatientRepository, fx.As(new(repositories.PatientRepository))),
		)
	}

	return fx.Options(
		fx.Provide(fx.Annotate(repositories.NewPostgresPatientRepository, fx.As(new(repositories.PatientRepository)))),
		fx.Provide(bootstrap.AsSchema(NewPatientSchema)),
	)
}

func idGeneratorModule(redisEnabled bool) fx.Option {
	if redisEnabled {
		return fx.Provide(
			fx.Annotate(services.NewRedisPatientIDGenerator, fx.As(new(services.IDGenerator))),
		)
	}
	return fx.Provide(
		fx.Annotate(services.NewLocalPatientIDGenerator, fx.As(new(services.IDGenerator))),
	)
}

// NewPatientSchema DDL de la table patients
func NewPatientSchema() bootstrap.Schema {
	return bootstrap.Schema{Name: "patients", Statements: queries.PatientSchema}
}

func RegisterPatientRoutes(r *gin.Engine, ctrl *controllers.PatientController) {
	patients := r.Group("/patients")
	{
		patients.POST("/create", ctrl.CreatePatient)
		patients.PUT("/update/:id", ctrl.UpdatePatient)
		patients.DELETE("/deactivate/:id", ctrl.DeactivatePatient)
		patients.GET("", ctrl.ListPatients)
		patients.POST("/orders/active", ctrl.GetPatientsWithActiveOrders)
	}
}
