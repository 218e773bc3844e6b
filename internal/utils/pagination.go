package utils

// TotalPages returns the number of pages needed for total items at the
// given page size, never less than 1.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages]. A request past the last page
// lands on the last page, never on an empty window.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageWindow returns the sliding window of page numbers shown when there
// are many pages: the current page plus up to two neighbours on each side,
// clamped to [1, totalPages].
func PageWindow(page, totalPages int) (first, last int) {
	first = page - 2
	if first < 1 {
		first = 1
	}
	last = page + 2
	if last > totalPages {
		last = totalPages
	}
	return first, last
}
