package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

var ErrObjectNotFound = errors.New("object not found in storage")

// ObjectInfo describes a stored media object.
type ObjectInfo struct {
	Size        int64
	ContentType string
	// Metadata holds the user metadata recorded at upload time. The upload
	// client records the probed duration under the "duration" key.
	Metadata map[string]string
}

// MediaStorage defines the interface for the external media host. Binary
// uploads go straight from the client to the store via presigned URLs; this
// service only hands out URLs and verifies that objects exist.
type MediaStorage interface {
	// PresignUpload creates a temporary URL that allows a PUT request to
	// upload an object directly to the storage provider.
	PresignUpload(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// StatObject reports whether an object exists and returns its metadata.
	// Returns ErrObjectNotFound when the object has not been uploaded.
	StatObject(ctx context.Context, objectKey string) (*ObjectInfo, error)

	// PublicURL returns the stable URL under which an uploaded object is
	// served.
	PublicURL(objectKey string) string

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
