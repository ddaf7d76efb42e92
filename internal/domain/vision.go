package domain

import "context"

// VisionModel sends one prompt plus one image to a multimodal model and
// returns the text completion
type VisionModel interface {
	Generate(ctx context.Context, prompt string, image *ImageUpload) (string, error)
	Model() string
}
