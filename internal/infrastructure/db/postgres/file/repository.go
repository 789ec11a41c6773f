package file

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "file-manager-api/internal/domain/file"
	"file-manager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateFile(ctx context.Context, req *domain.File) (*domain.File, error) {
	f := new(File)

	err := r.db.QueryRow(
		ctx,
		InsertFile,
		req.UUID, req.UserID, req.StorageName, req.OriginalName, req.MimeType, req.SizeBytes, req.URL,
	).Scan(
		&f.ID,
		&f.UUID,
		&f.UserID,

		&f.StorageName,
		&f.OriginalName,
		&f.MimeType,
		&f.SizeBytes,
		&f.URL,

		&f.UploadedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrDuplicateStorageName
		}
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) FetchFiles(ctx context.Context, q domain.ListQuery) (domain.Files, uint64, error) {
	pattern := SearchPattern(q.Search)

	var total uint64
	if err := r.db.QueryRow(ctx, CountFiles, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, SelectFiles(q.Sort), pattern, q.Limit, q.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f := new(File)

		if err = rows.Scan(
			&f.ID,
			&f.UUID,
			&f.UserID,

			&f.StorageName,
			&f.OriginalName,
			&f.MimeType,
			&f.SizeBytes,
			&f.URL,

			&f.UploadedAt,
		); err != nil {
			return nil, 0, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return fromDBModels(&fs), total, nil
}

func (r *Repository) FetchFileByID(ctx context.Context, uuid domain.UUID) (*domain.File, error) {
	f := new(File)
	err := r.db.QueryRow(ctx, SelectFileByID, uuid.String()).Scan(
		&f.ID,
		&f.UUID,
		&f.UserID,

		&f.StorageName,
		&f.OriginalName,
		&f.MimeType,
		&f.SizeBytes,
		&f.URL,

		&f.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) DeleteFileByID(ctx context.Context, uuid domain.UUID) error {
	ct, err := r.db.Exec(ctx, DeleteFile, uuid.String())
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}
