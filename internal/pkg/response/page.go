package response

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Total  int `json:"total"`
	Items  []T `json:"items"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewPageResponse is a helper to quickly create a response
func NewPageResponse[T any](items []T, offset, limit, total int) PageResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Total:  total,
		Items:  items,
		Offset: offset,
		Limit:  limit,
	}
}
