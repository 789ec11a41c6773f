package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID     uint64
		UUID   uuid.UUID
		UserID *uuid.UUID

		StorageName  string
		OriginalName string
		MimeType     string
		SizeBytes    uint64
		URL          string

		UploadedAt time.Time
	}
	Files []*File
)
