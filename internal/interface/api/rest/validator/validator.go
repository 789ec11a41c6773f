package validator

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"file-manager-api/internal/domain/file"
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ParseListQuery never fails: malformed pagination or an unknown sort field
// degrades to the documented defaults instead of rejecting the request.
func ParseListQuery(page, limit, sort, search string) file.ListQuery {
	return file.ListQuery{
		Page:   parsePositive(page),
		Limit:  parsePositive(limit),
		Sort:   ParseSort(sort),
		Search: strings.TrimSpace(search),
	}.Normalize()
}

// ParseSort reads a sort field name with an optional leading "-" for
// descending order, e.g. "-uploadDate".
func ParseSort(raw string) file.Sort {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return file.DefaultSort()
	}

	desc := strings.HasPrefix(raw, "-")
	f, ok := file.SortFieldFromString(strings.TrimPrefix(raw, "-"))
	if !ok {
		return file.DefaultSort()
	}

	return file.Sort{Field: f, Desc: desc}
}

func parsePositive(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0
	}

	return n
}
