package domain

import "errors"

var (
	// ErrMissingCredential is returned when no provider API key was configured
	ErrMissingCredential = errors.New("no API key provided")

	// ErrMissingImage is returned when the request carries no image
	ErrMissingImage = errors.New("no image provided")

	// ErrImageTooLarge is returned when the image exceeds the upload ceiling
	ErrImageTooLarge = errors.New("image too large")

	// ErrUnsupportedImageType is returned when the image MIME type is not allowed
	ErrUnsupportedImageType = errors.New("unsupported image type")

	// ErrAnalysisFailed is returned when the inference call fails for any reason
	ErrAnalysisFailed = errors.New("failed to analyze image")
)
