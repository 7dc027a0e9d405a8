package ports

import "context"

// StoredImage describes an uploaded image in the media store.
type StoredImage struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// ImageStore is the external media-hosting collaborator.
type ImageStore interface {
	// Upload stores the raw image bytes under the given folder and returns its
	// public location.
	Upload(ctx context.Context, data []byte, contentType, folder string) (*StoredImage, error)
	// Delete removes a previously uploaded image by its key.
	Delete(ctx context.Context, key string) error
}
