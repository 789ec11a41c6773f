package file

import "errors"

var (
	ErrEmptyBatch    = errors.New("no files in upload batch")
	ErrBatchTooLarge = errors.New("too many files in upload batch")
	ErrNotFound      = errors.New("file not found")
	// ErrBlobDelete marks a failed blob removal; the metadata record is kept
	// so the delete stays discoverable and retryable.
	ErrBlobDelete = errors.New("blob deletion failed")
)
