package usecase

import (
	"fmt"
	"strings"

	"github.com/foodlens/backend/internal/domain"
	"github.com/gabriel-vasile/mimetype"
)

const genericMIMEType = "application/octet-stream"

// IntakeConfig bounds what the analyzer accepts as an image
type IntakeConfig struct {
	MaxUploadBytes   int64    // 0 disables the size ceiling
	AllowedMIMETypes []string // empty accepts any type
}

// ResolveMIMEType prefers the declared type and falls back to sniffing the bytes
func ResolveMIMEType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && !mimetype.EqualsAny(declared, genericMIMEType) {
		return declared
	}
	if len(data) == 0 {
		return genericMIMEType
	}
	return mimetype.Detect(data).String()
}

// checkUpload applies the intake rules in order: presence, size, type
func checkUpload(upload *domain.ImageUpload, cfg IntakeConfig) error {
	if upload.Empty() {
		return domain.ErrMissingImage
	}

	size := upload.Size
	if size < int64(len(upload.Data)) {
		size = int64(len(upload.Data))
	}
	if cfg.MaxUploadBytes > 0 && size > cfg.MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrImageTooLarge, size, cfg.MaxUploadBytes)
	}

	upload.MIMEType = ResolveMIMEType(upload.MIMEType, upload.Data)
	if len(cfg.AllowedMIMETypes) > 0 && !mimetype.EqualsAny(upload.MIMEType, cfg.AllowedMIMETypes...) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, upload.MIMEType)
	}

	return nil
}
