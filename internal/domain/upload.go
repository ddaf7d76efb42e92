package domain

// ImageUpload is the image taken from the multipart form
type ImageUpload struct {
	Filename string
	MIMEType string
	Size     int64
	Data     []byte
}

// Empty reports whether the upload carries no image bytes
func (u *ImageUpload) Empty() bool {
	return u == nil || len(u.Data) == 0
}
