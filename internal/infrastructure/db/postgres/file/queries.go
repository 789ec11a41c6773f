package file

import (
	"fmt"
	"strings"

	domain "file-manager-api/internal/domain/file"
)

const (
	InsertFile = `
		INSERT INTO files (uuid, user_id, storage_name, original_name, mime_type, size_bytes, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING
		  id, uuid, user_id, storage_name, original_name, mime_type, size_bytes, url, uploaded_at
	`
	SelectFileByID = `
		SELECT id, uuid, user_id, storage_name, original_name, mime_type, size_bytes, url, uploaded_at
		FROM files
		WHERE uuid = $1
	`
	CountFiles = `
		SELECT count(*)
		FROM files
		WHERE original_name ILIKE $1 OR mime_type ILIKE $1
	`
	DeleteFile = `DELETE FROM files WHERE uuid = $1`

	selectFilesFmt = `
		SELECT id, uuid, user_id, storage_name, original_name, mime_type, size_bytes, url, uploaded_at
		FROM files
		WHERE original_name ILIKE $1 OR mime_type ILIKE $1
		ORDER BY %s, id DESC
		LIMIT $2 OFFSET $3
	`
)

// sortColumns whitelists ORDER BY targets; sort fields never reach the SQL
// text unmapped.
var sortColumns = map[domain.SortField]string{
	domain.SortByUploadDate:   "uploaded_at",
	domain.SortByOriginalName: "original_name",
	domain.SortBySize:         "size_bytes",
	domain.SortByFileType:     "mime_type",
}

func SelectFiles(s domain.Sort) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = "uploaded_at"
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}

	return fmt.Sprintf(selectFilesFmt, col+" "+dir)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPattern builds the ILIKE argument for a raw search term. LIKE
// metacharacters in the term are escaped so they match literally; an empty
// term yields "%%" and matches every row.
func SearchPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
