package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/foodlens/backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// DefaultModel is the model used when none is configured
const DefaultModel = "gemini-2.0-flash-exp"

// generator is the slice of *genai.GenerativeModel the client needs
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client handles communication with the Gemini API
type Client struct {
	genaiClient *genai.Client
	model       generator
	modelName   string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// Options configures a Gemini client
type Options struct {
	APIKey            string
	Model             string
	RequestsPerMinute int // 0 disables outbound pacing
}

// NewClient creates a new Gemini API client. It is built once at startup and
// shared by all requests; genai.Client is safe for concurrent use.
func NewClient(ctx context.Context, opts Options, logger *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, domain.ErrMissingCredential
	}

	modelName := strings.TrimSpace(opts.Model)
	if modelName == "" {
		modelName = DefaultModel
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := newClient(gc.GenerativeModel(modelName), modelName, opts.RequestsPerMinute, logger)
	c.genaiClient = gc
	return c, nil
}

func newClient(model generator, modelName string, requestsPerMinute int, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		model:       model,
		modelName:   modelName,
		rateLimiter: newLimiter(requestsPerMinute),
		logger:      logger.With(zap.String("model", modelName)),
	}
}

// newLimiter paces outbound calls to stay inside the provider quota.
// rate.Limit is requests per second, so 60 rpm = 1 request/sec.
func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := max(1, requestsPerMinute/6)
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), burst)
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.modelName
}

// Generate sends the prompt and the inline image in a single request and
// returns the text of the first candidate. There are no retries.
func (c *Client) Generate(ctx context.Context, prompt string, image *domain.ImageUpload) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	c.logger.Debug("generate content",
		zap.String("mime_type", image.MIMEType),
		zap.Int("image_bytes", len(image.Data)),
	)

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.Blob{MIMEType: image.MIMEType, Data: image.Data},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := ResponseText(resp)
	if text == "" {
		// Not an error: an empty reply is shown to the client as empty text
		c.logger.Warn("empty completion",
			zap.Int("candidates", candidateCount(resp)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return "", nil
	}

	c.logger.Debug("completion received",
		zap.Int("length", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}

// Close releases the underlying connection
func (c *Client) Close() error {
	if c.genaiClient == nil {
		return nil
	}
	return c.genaiClient.Close()
}
