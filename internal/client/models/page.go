package models

// Page is the paginated list envelope.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// HasMore reports whether a page after this one exists.
func (p Page[T]) HasMore() bool {
	return p.Meta.CurrentPage < p.Meta.LastPage
}

// Envelope is the single-resource wrapper {"data": ...}.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// Message is a bare acknowledgement.
type Message struct {
	Message string `json:"message"`
}
