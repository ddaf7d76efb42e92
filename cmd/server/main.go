package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/foodlens/backend/config"
	httpDelivery "github.com/foodlens/backend/internal/delivery/http"
	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/infrastructure/gemini"
	"github.com/foodlens/backend/internal/prompt"
	"github.com/foodlens/backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Starting FoodLens Backend v1.0.0",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("prompt_version", prompt.Version),
	)

	// Initialize infrastructure dependencies.
	// model stays a nil interface without a key so the service reports
	// the missing credential per request.
	var model domain.VisionModel
	if strings.TrimSpace(cfg.Gemini.APIKey) != "" {
		geminiClient, err := gemini.NewClient(context.Background(), gemini.Options{
			APIKey:            cfg.Gemini.APIKey,
			Model:             cfg.Gemini.Model,
			RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
		}, logger.Named("gemini"))
		if err != nil {
			logger.Fatal("Failed to create Gemini client", zap.Error(err))
		}
		defer geminiClient.Close()
		model = geminiClient

		logger.Info("Gemini API configured",
			zap.String("model", geminiClient.Model()),
			zap.Int("requests_per_minute", cfg.Gemini.RequestsPerMinute),
		)
	} else {
		logger.Warn("WARNING: Gemini API key NOT CONFIGURED - analyze requests will fail with 400")
	}

	// Initialize usecase layer
	analysisService := usecase.NewAnalysisService(
		model,
		usecase.AnalysisServiceConfig{
			Intake: usecase.IntakeConfig{
				MaxUploadBytes:   cfg.Upload.MaxBytes,
				AllowedMIMETypes: cfg.Upload.AllowedMIMETypes,
			},
			StrictSchema: cfg.Analysis.StrictSchema,
			Timeout:      cfg.Analysis.Timeout,
		},
		logger.Named("analysis"),
	)

	logger.Info("Analysis configured",
		zap.Int64("max_upload_bytes", cfg.Upload.MaxBytes),
		zap.Strings("allowed_mime_types", cfg.Upload.AllowedMIMETypes),
		zap.Bool("strict_schema", cfg.Analysis.StrictSchema),
		zap.Duration("timeout", cfg.Analysis.Timeout),
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService, cfg.Upload.MaxBytes, logger.Named("http"))

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger.Named("http"))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("Server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// newLogger returns a JSON production logger in production and a
// human-readable development logger everywhere else
func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
