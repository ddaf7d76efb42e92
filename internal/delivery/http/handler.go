package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/foodlens/backend/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName    = "foodlens-backend"
	serviceVersion = "1.0.0"

	imageField = "image"

	internalErrorMessage  = "Internal server error"
	analysisFailedMessage = "Failed to analyze image"

	// multipartOverhead is the slack allowed on top of the image ceiling for
	// boundaries, part headers and other form fields
	multipartOverhead = 1 << 20
)

// Analyzer is what the handler needs from the analysis usecase
type Analyzer interface {
	Analyze(ctx context.Context, upload *domain.ImageUpload) (*domain.Analysis, error)
	Ready() error
	ModelName() string
	Prompt() (version string, text string)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analyzer       Analyzer
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewHandler creates a new HTTP handler.
// maxUploadBytes caps the request body (plus multipart overhead); 0 leaves it uncapped.
func NewHandler(analyzer Analyzer, maxUploadBytes int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		analyzer:       analyzer,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":               "healthy",
		"service":              serviceName,
		"version":              serviceVersion,
		"model":                h.analyzer.ModelName(),
		"credentialConfigured": h.analyzer.Ready() == nil,
	})
}

// Prompt returns the prompt sent to the model with every image
func (h *Handler) Prompt(c *gin.Context) {
	version, text := h.analyzer.Prompt()
	c.JSON(http.StatusOK, gin.H{
		"version": version,
		"prompt":  text,
	})
}

// AnalyzeImage handles POST /api/analyze with a multipart "image" field
func (h *Handler) AnalyzeImage(c *gin.Context) {
	// Credential first, before touching the body
	if err := h.analyzer.Ready(); err != nil {
		h.respondError(c, err)
		return
	}

	upload, err := h.readUpload(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), upload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// readUpload pulls the image part out of the multipart body
func (h *Handler) readUpload(c *gin.Context) (*domain.ImageUpload, error) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	header, err := c.FormFile(imageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.ErrImageTooLarge
		}
		// Not multipart, no such field, or a truncated form
		h.logger.Debug("no image in request",
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
		return nil, domain.ErrMissingImage
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &domain.ImageUpload{
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Data:     data,
	}, nil
}

// respondError maps a pipeline error to its fixed client envelope.
// The underlying error only goes to the log.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, analysisFailedMessage
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		status, message = http.StatusBadRequest, "No API key provided"
	case errors.Is(err, domain.ErrMissingImage):
		status, message = http.StatusBadRequest, "No image provided"
	case errors.Is(err, domain.ErrImageTooLarge):
		status, message = http.StatusRequestEntityTooLarge, "Image too large"
	case errors.Is(err, domain.ErrUnsupportedImageType):
		status, message = http.StatusUnsupportedMediaType, "Unsupported image type"
	}

	fields := []zap.Field{
		zap.String("request_id", requestID(c)),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("analyze request failed", fields...)
	} else {
		h.logger.Warn("analyze request rejected", fields...)
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{"error": message})
}
