package grid

import "fmt"

// SortDirection is the single-column sort state.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// ParseSortDirection parses "asc", "desc" or "" / "none".
func ParseSortDirection(s string) (SortDirection, error) {
	switch s {
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	case "", "none":
		return SortNone, nil
	}
	return SortNone, fmt.Errorf("unknown sort direction %q", s)
}

// PageSizeOptions are the page sizes offered to the user.
var PageSizeOptions = []int{10, 20, 50, 100}

// ServerData is one page of externally fetched rows plus the callbacks the
// table invokes on user intent. The table never fetches rows itself.
type ServerData[T any] struct {
	Rows       []T
	TotalCount int
	Loading    bool
	Refetching bool

	// Page is 1-based.
	Page          int
	PageSize      int
	SortColumn    string
	SortDirection SortDirection
	SearchQuery   string

	OnPageChange     func(page int)
	OnPageSizeChange func(size int)
	OnSortChange     func(column string, dir SortDirection)
	OnSearchChange   func(query string)
}

// TotalPages is at least 1.
func (d ServerData[T]) TotalPages() int {
	if d.PageSize <= 0 || d.TotalCount <= 0 {
		return 1
	}
	return (d.TotalCount + d.PageSize - 1) / d.PageSize
}

func (d ServerData[T]) CanPrev() bool { return d.Page > 1 }

func (d ServerData[T]) CanNext() bool { return d.Page < d.TotalPages() }

// query is the part of the data contract that defines row set identity.
type query struct {
	page     int
	pageSize int
	sortCol  string
	sortDir  SortDirection
	search   string
}

func (d ServerData[T]) query() query {
	return query{
		page:     d.Page,
		pageSize: d.PageSize,
		sortCol:  d.SortColumn,
		sortDir:  d.SortDirection,
		search:   d.SearchQuery,
	}
}
