package catalog

// Paginate returns the 1-based page of items. Pages outside the valid range
// yield an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 || page <= 0 || page > TotalPages(items, size) {
		return []T{}
	}

	// page-1 < TotalPages, so start is below len(items) and cannot overflow.
	start := (page - 1) * size
	end := start + min(size, len(items)-start)
	return items[start:end:end]
}

// TotalPages is zero for an empty list.
func TotalPages[T any](items []T, size int) int {
	if size <= 0 || len(items) == 0 {
		return 0
	}
	return (len(items)-1)/size + 1
}
