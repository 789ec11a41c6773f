package file

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MaxBatchFiles bounds one upload request.
	MaxBatchFiles = 50
	// MaxFileBytes bounds a single payload (100 MiB).
	MaxFileBytes = int64(100 << 20)
)

type (
	UUID = uuid.UUID
	File struct {
		UUID   UUID
		UserID *uuid.UUID

		StorageName  string
		OriginalName string
		MimeType     string
		SizeBytes    uint64
		URL          string

		UploadedAt time.Time
	}
	Files []*File

	// UploadError is one failed file of a batch; the batch itself carries on.
	UploadError struct {
		Filename string
		Reason   string
	}
)
