package models

// PageMetadata carries the continuation state of a paginated response.
// NextCursor is an opaque token; an empty cursor marks the terminal page.
type PageMetadata struct {
	NextCursor string
	NextPage   string
	TotalItems int64
	TotalPages int64
}

// HasMore reports whether another page can be fetched.
func (m PageMetadata) HasMore() bool {
	return m.NextCursor != ""
}

// PaginatedResult is one page of items plus its continuation metadata.
type PaginatedResult[T any] struct {
	Items    []T
	Metadata PageMetadata
}
