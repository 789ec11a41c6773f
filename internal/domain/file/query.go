package file

type (
	SortField string

	Sort struct {
		Field SortField
		Desc  bool
	}

	// ListQuery is a normalized read request against the metadata store.
	ListQuery struct {
		Page   int
		Limit  int
		Sort   Sort
		Search string
	}

	Pagination struct {
		Page  int
		Limit int
		Total uint64
		Pages uint64
	}
)

const (
	SortByUploadDate   SortField = "uploadDate"
	SortByOriginalName SortField = "originalName"
	SortBySize         SortField = "size"
	SortByFileType     SortField = "fileType"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var sortFields = map[string]SortField{
	string(SortByUploadDate):   SortByUploadDate,
	string(SortByOriginalName): SortByOriginalName,
	string(SortBySize):         SortBySize,
	string(SortByFileType):     SortByFileType,
}

// SortFieldFromString maps a wire-level field name onto a known sort field.
func SortFieldFromString(s string) (SortField, bool) {
	f, ok := sortFields[s]
	return f, ok
}

func DefaultSort() Sort {
	return Sort{Field: SortByUploadDate, Desc: true}
}

// Normalize clamps a query to a sane positive configuration. Malformed
// pagination never reaches the store: zero or negative values fall back to
// the defaults, oversized limits are capped, unknown sort fields become
// newest-first.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if _, ok := sortFields[string(q.Sort.Field)]; !ok {
		q.Sort = DefaultSort()
	}
	return q
}

func (q ListQuery) Offset() int { return (q.Page - 1) * q.Limit }

// NewPagination derives page metadata from the total over the whole filtered
// set, not the returned slice.
func NewPagination(page, limit int, total uint64) Pagination {
	var pages uint64
	if limit > 0 {
		pages = (total + uint64(limit) - 1) / uint64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
