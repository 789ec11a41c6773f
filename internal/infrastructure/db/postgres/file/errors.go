package file

import "errors"

// ErrDuplicateStorageName surfaces a unique violation on storage_name so the
// caller can treat the collision as a per-file failure instead of a batch
// failure.
var ErrDuplicateStorageName = errors.New("storage name already exists")
