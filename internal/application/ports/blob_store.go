package ports

import (
	"context"
	"io"
)

type BlobStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}
