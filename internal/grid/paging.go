package grid

import "slices"

// SetPage asks the host for another page. Out-of-range pages are inert.
func (t *Table[T]) SetPage(page int) bool {
	d := t.data
	if page < 1 || page > d.TotalPages() || page == d.Page || d.OnPageChange == nil {
		return false
	}
	t.history.Clear()
	d.OnPageChange(page)
	return true
}

func (t *Table[T]) NextPage() bool { return t.SetPage(t.data.Page + 1) }
func (t *Table[T]) PrevPage() bool { return t.SetPage(t.data.Page - 1) }

// SetPageSize asks the host for a different page size.
func (t *Table[T]) SetPageSize(size int) bool {
	d := t.data
	if size <= 0 || size == d.PageSize || d.OnPageSizeChange == nil {
		return false
	}
	t.history.Clear()
	d.OnPageSizeChange(size)
	return true
}

// CyclePageSize steps through PageSizeOptions.
func (t *Table[T]) CyclePageSize() bool {
	i := slices.Index(PageSizeOptions, t.data.PageSize)
	return t.SetPageSize(PageSizeOptions[(i+1)%len(PageSizeOptions)])
}

// SortBy asks the host to sort by column in dir. Choosing the active column
// and direction again clears the sort. Unsortable columns are inert.
func (t *Table[T]) SortBy(column string, dir SortDirection) bool {
	d := t.data
	if d.OnSortChange == nil {
		return false
	}
	if column != "" {
		desc, ok := t.layout.Descriptor(column)
		if !ok || !desc.Sortable() {
			return false
		}
	}
	if column == "" || dir == SortNone || (column == d.SortColumn && dir == d.SortDirection) {
		column, dir = "", SortNone
	}
	if column == d.SortColumn && dir == d.SortDirection {
		return false
	}
	t.history.Clear()
	t.log.Debug("sort requested", "column", column, "dir", dir.String())
	d.OnSortChange(column, dir)
	return true
}

// CycleSort moves a column through none, asc, desc and back to none.
func (t *Table[T]) CycleSort(column string) bool {
	next := SortAsc
	if t.data.SortColumn == column {
		switch t.data.SortDirection {
		case SortAsc:
			next = SortDesc
		case SortDesc:
			next = SortNone
		}
	}
	return t.SortBy(column, next)
}

// Search forwards the search text to the host.
func (t *Table[T]) Search(q string) bool {
	d := t.data
	if q == d.SearchQuery || d.OnSearchChange == nil {
		return false
	}
	d.OnSearchChange(q)
	return true
}
