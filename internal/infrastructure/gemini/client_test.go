package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/foodlens/backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// fakeGenerator records the parts it receives and replays a canned response
type fakeGenerator struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls int
	parts []genai.Part
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.parts = parts
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		},
	}
}

func testImage() *domain.ImageUpload {
	return &domain.ImageUpload{
		Filename: "plate.jpg",
		MIMEType: "image/jpeg",
		Data:     []byte{0xFF, 0xD8, 0xFF, 0xE0},
	}
}

func TestNewClient(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		client, err := NewClient(context.Background(), Options{APIKey: "  "}, nil)

		assert.Nil(t, client)
		assert.ErrorIs(t, err, domain.ErrMissingCredential)
	})

	t.Run("defaults the model name", func(t *testing.T) {
		client, err := NewClient(context.Background(), Options{APIKey: "test-api-key"}, nil)
		require.NoError(t, err)
		defer client.Close()

		assert.Equal(t, DefaultModel, client.Model())
		assert.NotNil(t, client.genaiClient)
		assert.NotNil(t, client.rateLimiter)
	})
}

func TestNewLimiter(t *testing.T) {
	unlimited := newLimiter(0)
	assert.Equal(t, rate.Inf, unlimited.Limit())

	paced := newLimiter(60)
	assert.Equal(t, rate.Limit(1), paced.Limit())
	assert.Equal(t, 10, paced.Burst())

	slow := newLimiter(3)
	assert.Equal(t, 1, slow.Burst())
}

func TestGenerate_Success(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(genai.Text("```json\n{}\n```"))}
	client := newClient(gen, "gemini-test", 0, nil)

	text, err := client.Generate(context.Background(), "describe the food", testImage())

	require.NoError(t, err)
	assert.Equal(t, "```json\n{}\n```", text)
	assert.Equal(t, 1, gen.calls)

	require.Len(t, gen.parts, 2)
	assert.Equal(t, genai.Text("describe the food"), gen.parts[0])
	blob, ok := gen.parts[1].(genai.Blob)
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", blob.MIMEType)
	assert.Equal(t, testImage().Data, blob.Data)
}

func TestGenerate_JoinsTextParts(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(
		genai.Text("```json\n{\"fooditems\":"),
		genai.Blob{MIMEType: "image/png", Data: []byte{1}},
		genai.Text("[]}\n```"),
	)}
	client := newClient(gen, "gemini-test", 0, nil)

	text, err := client.Generate(context.Background(), "p", testImage())

	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"fooditems\":[]}\n```", text)
}

func TestGenerate_ProviderError(t *testing.T) {
	providerErr := errors.New("googleapi: Error 403: API key not valid")
	gen := &fakeGenerator{err: providerErr}
	client := newClient(gen, "gemini-test", 0, nil)

	text, err := client.Generate(context.Background(), "p", testImage())

	assert.Empty(t, text)
	assert.ErrorIs(t, err, providerErr)
	assert.Equal(t, 1, gen.calls)
}

func TestGenerate_EmptyCompletion(t *testing.T) {
	responses := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		textResponse(),
		textResponse(genai.Text("")),
	}

	for _, resp := range responses {
		gen := &fakeGenerator{resp: resp}
		client := newClient(gen, "gemini-test", 0, nil)

		text, err := client.Generate(context.Background(), "p", testImage())

		assert.NoError(t, err)
		assert.Empty(t, text)
		assert.Equal(t, 1, gen.calls)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(genai.Text("hi"))}
	client := newClient(gen, "gemini-test", 60, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "p", testImage())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, gen.calls)
}

func TestResponseText_SkipsCandidatesWithoutText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			nil,
			{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
		},
	}

	assert.Equal(t, "second", ResponseText(resp))
}
