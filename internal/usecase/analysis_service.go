package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/prompt"
	"go.uber.org/zap"
)

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	Intake       IntakeConfig
	StrictSchema bool
	Timeout      time.Duration // 0 leaves the call bounded only by the request context
}

// AnalysisService turns an uploaded food image into a classified nutrition analysis
type AnalysisService struct {
	model     domain.VisionModel
	validator *RecordValidator
	intake    IntakeConfig
	timeout   time.Duration
	prompt    string
	logger    *zap.Logger
}

// NewAnalysisService creates a new analysis service.
// A nil model means no provider credential was configured; the service still
// works but every analysis fails with domain.ErrMissingCredential.
func NewAnalysisService(model domain.VisionModel, config AnalysisServiceConfig, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}

	var v *RecordValidator
	if config.StrictSchema {
		v = NewRecordValidator()
	}

	return &AnalysisService{
		model:     model,
		validator: v,
		intake:    config.Intake,
		timeout:   config.Timeout,
		prompt:    prompt.Nutrition(),
		logger:    logger,
	}
}

// Ready returns domain.ErrMissingCredential when no model is configured
func (s *AnalysisService) Ready() error {
	if s.model == nil {
		return domain.ErrMissingCredential
	}
	return nil
}

// ModelName returns the configured model name, or "" without a credential
func (s *AnalysisService) ModelName() string {
	if s.model == nil {
		return ""
	}
	return s.model.Model()
}

// Prompt returns the prompt version and text sent with every image
func (s *AnalysisService) Prompt() (string, string) {
	return prompt.Version, s.prompt
}

// Analyze runs the full pipeline for one image.
// Flow: credential -> intake checks -> model call -> extract -> classify
func (s *AnalysisService) Analyze(ctx context.Context, upload *domain.ImageUpload) (*domain.Analysis, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}
	if err := checkUpload(upload, s.intake); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.model.Generate(ctx, s.prompt, upload)
	if err != nil {
		s.logger.Error("image analysis failed",
			zap.String("mime_type", upload.MIMEType),
			zap.Int("image_bytes", len(upload.Data)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}

	s.logger.Debug("model response", zap.String("text", text))

	analysis, extractErr := Classify(text, s.validator)
	switch {
	case extractErr == nil:
		s.logger.Info("nutrition record extracted",
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("strict", s.validator != nil),
		)
	case errors.Is(extractErr, ErrNoJSONBlock):
		s.logger.Warn("no JSON found in the response, returning text",
			zap.Int("response_length", len(text)),
		)
	default:
		s.logger.Warn("could not parse JSON in the response, returning text",
			zap.Int("response_length", len(text)),
			zap.Error(extractErr),
		)
	}

	return analysis, nil
}
