package app

import (
	"net/http"

	"soins-suite-services/internal/app/config"
	"soins-suite-services/internal/infrastructure/logger"
	"soins-suite-services/internal/shared/middleware/core"
	"soins-suite-services/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
)

func NewRouter(
	cfg *config.Config,
	loggerMiddleware *logger.LoggerMiddleware,
	requestID core.RequestIDHandler,
	recovery core.RecoveryHandler,
	cors security.CORSHandler,
) *gin.Engine {
	// Set Gin mode based on environment
	configureGinMode(cfg.Environment)

	// Create router without default middleware for custom configuration
	r := gin.New()

	// Middlewares dans l'ordre d'importance
	r.Use(gin.HandlerFunc(requestID))
	r.Use(gin.HandlerFunc(recovery))
	r.Use(loggerMiddleware.GinLogger())
	r.Use(gin.HandlerFunc(cors))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.Service.Name,
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"service":     cfg.Service.Name,
			"instance_id": cfg.Service.InstanceID,
		})
	})

	return r
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "docker":
		gin.SetMode(gin.ReleaseMode)
	default:
		// Mode debug par défaut pour développement local
		gin.SetMode(gin.DebugMode)
	}
}
