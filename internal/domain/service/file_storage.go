package service

import (
	"context"
	"io"
)

// FileStorage abstracts where uploaded images live (local directory, cloud
// bucket). Keys are opaque object names returned to the caller and stored on
// the owning entity.
type FileStorage interface {
	// Save writes the content under a generated key inside the given prefix
	// (e.g. "profile_images") and returns the key.
	Save(ctx context.Context, prefix, filename string, content io.Reader) (string, error)

	// Delete removes the object with the given key. Deleting a missing object
	// is not an error.
	Delete(ctx context.Context, key string) error
}
