package dto

import "errors"

// SearchPageSize is the fixed page size for guest search and owner listings.
const SearchPageSize = 5

// ErrPageOutOfRange signals a request for a page past the last one. It is
// never produced for an empty result set; zero results are an ordinary
// empty page.
var ErrPageOutOfRange = errors.New("dto: page out of range")

type Pagination struct {
	CurrentPage     int  `json:"current_page"`
	TotalPages      int  `json:"total_pages"`
	TotalItems      int  `json:"total_items"`
	PerPage         int  `json:"per_page"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// Page is a paginated response payload.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// PageMeta computes pagination metadata for a known total. Used directly
// when the store pages server-side.
func PageMeta(totalItems, page, size int) (Pagination, error) {
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + size - 1) / size
		if page > totalPages {
			return Pagination{}, ErrPageOutOfRange
		}
	}
	return Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      totalItems,
		PerPage:         size,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}, nil
}

// Paginate slices an in-memory result into the requested page.
func Paginate[T any](items []T, page, size int) (Page[T], error) {
	meta, err := PageMeta(len(items), page, size)
	if err != nil {
		return Page[T]{}, err
	}
	start := (page - 1) * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Data: append([]T{}, items[start:end]...), Pagination: meta}, nil
}
