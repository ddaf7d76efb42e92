package http

import (
	"github.com/foodlens/backend/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger, internalErrorMessage))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		analyze := api.Group("/analyze")
		{
			// A panic while analyzing still answers with the analyze envelope
			analyze.POST("", RecoveryMiddleware(logger, analysisFailedMessage), handler.AnalyzeImage)
			analyze.GET("/prompt", handler.Prompt)
		}
	}

	return router
}
