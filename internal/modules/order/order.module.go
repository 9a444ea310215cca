package order

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"soins-suite-services/internal/app/bootstrap"
	"soins-suite-services/internal/app/config"
	"soins-suite-services/internal/modules/order/controllers"
	"soins-suite-services/internal/modules/order/queries"
	"soins-suite-services/internal/modules/order/repositories"
	"soins-suite-services/internal/modules/order/services"
)

// Module service commande; le repository dépend du driver de stockage configuré
func Module(cfg *config.Config) fx.Option {
	return fx.Options(
		repositoryModule(cfg.Storage.Driver),
		fx.Provide(services.NewOrderService),
		fx.Provide(controllers.NewOrderController),
		fx.Invoke(RegisterOrderRoutes),
	)
}

func repositoryModule(driver string) fx.Option {
	switch driver {
	case config.StorageMongoDB:
		return fx.Provide(
			fx.Annotate(repositories.NewMongoOrderRepository, fx.As(new(repositories.OrderRepository))),
		)
	case config.StorageMemory:
		return fx.Provide(
			fx.Annotate(repositories.NewMemoryOrderRepository, fx.As(new(repositories.OrderRepository))),
		)
	default:
		return fx.Options(
			fx.Provide(fx.Annotate(repositories.NewPostgresOrderRepository, fx.As(new(repositories.OrderRepository)))),
			fx.Provide(bootstrap.AsSchema(NewOrderSchema)),
		)
	}
}

// NewOrderSchema DDL de la table orders
func NewOrderSchema() bootstrap.Schema {
	return bootstrap.Schema{Name: "orders", Statements: queries.OrderSchema}
}

func RegisterOrderRoutes(r *gin.Engine, ctrl *controllers.OrderController) {
	orders := r.Group("/orders")
	{
		orders.POST("/create", ctrl.CreateOrder)
		orders.PUT("/update/:orderId", ctrl.UpdateOrder)
		orders.DELETE("/decline/:orderId", ctrl.DeclineOrder)
		orders.GET("", ctrl.ListOrders)
		orders.GET("/:orderId", ctrl.GetOrder)
	}
}
