package ports

import (
	"context"
	"mime/multipart"

	"file-manager-api/internal/domain/file"
)

type FileService interface {
	// UploadFiles stores each part independently; one bad file never fails
	// the batch.
	UploadFiles(ctx context.Context, ownerID *file.UUID, headers []*multipart.FileHeader) (file.Files, []file.UploadError, error)
	ListFiles(ctx context.Context, q file.ListQuery) (file.Files, file.Pagination, error)
	DeleteFile(ctx context.Context, uuid file.UUID) error
}
