// Package storage implements the FileStorage domain service on top of a
// gocloud.dev blob bucket, so uploaded images can live on a local directory
// in development and any supported cloud bucket in production.
package storage

import (
	"context"
	"io"
	"path"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Register the file:// bucket scheme for local development.
	_ "gocloud.dev/blob/fileblob"

	"github.com/hcplayer1988/coderr/config"
	"github.com/hcplayer1988/coderr/internal/domain/lifecycle"
	"github.com/hcplayer1988/coderr/internal/domain/service"
	"github.com/hcplayer1988/coderr/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Params defines the required parameters.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

type blobStorage struct {
	bucket *blob.Bucket
}

// New opens the configured bucket URL and returns it as a FileStorage.
func New(params Params) (service.FileStorage, error) {
	if params.Config.Storage == nil || params.Config.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket url must be provided")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", params.Config.Storage.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{bucket: bucket}, nil
}

// Save writes the content under "<prefix>/<uuid><ext>" and returns the key.
// The random key keeps uploads from clobbering each other regardless of the
// client-provided filename.
func (s *blobStorage) Save(ctx context.Context, prefix, filename string, content io.Reader) (string, error) {
	key := path.Join(prefix, uuid.NewString()+path.Ext(filename))

	writer, err := s.bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open writer for %s", key)
	}

	if _, err := io.Copy(writer, content); err != nil {
		_ = writer.Close()

		return "", errors.Wrapf(err, "failed to write %s", key)
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to finalize %s", key)
	}

	return key, nil
}

// Delete removes the object with the given key. A missing object is treated
// as already deleted.
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete %s", key)
	}

	return nil
}
