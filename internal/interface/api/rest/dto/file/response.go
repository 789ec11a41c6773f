package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	// Uploaded is the short record shape returned from the upload endpoint.
	Uploaded struct {
		ID           uuid.UUID `json:"id"`
		OriginalName string    `json:"originalName"`
		URL          string    `json:"url"`
		Size         uint64    `json:"size"`
		FileType     string    `json:"fileType"`
		UploadDate   time.Time `json:"uploadDate"`
	}
	Uploadeds []Uploaded

	File struct {
		ID           uuid.UUID  `json:"id"`
		StorageName  string     `json:"storageName"`
		OriginalName string     `json:"originalName"`
		URL          string     `json:"url"`
		Size         uint64     `json:"size"`
		FileType     string     `json:"fileType"`
		UploadDate   time.Time  `json:"uploadDate"`
		UserID       *uuid.UUID `json:"userId,omitempty"`
	}
	Files []File

	UploadFailure struct {
		Filename string `json:"filename"`
		Error    string `json:"error"`
	}
	UploadFailures []UploadFailure

	Pagination struct {
		Page  int    `json:"page"`
		Limit int    `json:"limit"`
		Total uint64 `json:"total"`
		Pages uint64 `json:"pages"`
	}

	UploadResponse struct {
		Success       bool           `json:"success"`
		UploadedFiles Uploadeds      `json:"uploadedFiles"`
		Errors        UploadFailures `json:"errors"`
		Message       string         `json:"message"`
	}
	ListResponse struct {
		Success    bool       `json:"success"`
		Files      Files      `json:"files"`
		Pagination Pagination `json:"pagination"`
	}
)
