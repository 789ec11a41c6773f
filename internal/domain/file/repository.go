package file

import (
	"context"
)

type Repository interface {
	CreateFile(ctx context.Context, req *File) (*File, error)
	// FetchFiles returns one page plus the total count over the whole
	// filtered set.
	FetchFiles(ctx context.Context, q ListQuery) (Files, uint64, error)
	FetchFileByID(ctx context.Context, uuid UUID) (*File, error)
	DeleteFileByID(ctx context.Context, uuid UUID) error
}
