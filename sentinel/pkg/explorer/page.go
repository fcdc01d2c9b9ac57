package explorer

// Page is one slice of a filtered result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate returns the 1-based page of items. Pages below 1 are treated as 1,
// sizes outside [1, MaxPageSize] fall back to DefaultPageSize or MaxPageSize.
// A page past the end yields no items.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}

	total := len(items)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}

	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * size
	end := min(start+size, total)
	p.Items = items[start:end:end]
	return p
}
