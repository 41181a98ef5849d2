package pagination

import (
	"fmt"

	"go-event-api/core/constants"
	"go-event-api/core/errors"
)

// Params are the validated paging inputs for list queries.
type Params struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// Normalize fills defaults and validates bounds.
func (p *Params) Normalize() *errors.AppError {
	if p.Page == 0 {
		p.Page = constants.DefaultPage
	}
	if p.PageSize == 0 {
		p.PageSize = constants.DefaultPageSize
	}
	if p.Page < 1 {
		return errors.NewAppError(errors.ErrInvalidInput, "page must be at least 1", nil)
	}
	if p.PageSize < 1 || p.PageSize > constants.MaxPageSize {
		return errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("page_size must be between 1 and %d", constants.MaxPageSize), nil)
	}
	return nil
}

// Offset returns the row offset for the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the row limit for the requested page.
func (p Params) Limit() int {
	return p.PageSize
}

// Page is a paginated result window plus its metadata.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPage assembles a result page. A page past the end yields an empty
// items slice, never an error.
func NewPage[T any](items []T, total int, params Params) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.PageSize - 1) / params.PageSize
	}
	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
