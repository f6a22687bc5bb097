// Package domain provides shared types for the business layer.
package domain

// Entity status values. Soft deletion flips the status, it never
// removes rows.
const (
	StatusActivo   = "activo"
	StatusInactivo = "inactivo"
)

// ListFilter carries the common listing parameters. Handlers sanitize
// page/limit (clamped to >= 1); repositories trust their input.
type ListFilter struct {
	// Status filters by lifecycle status when non-empty.
	Status string

	// Search is a case-insensitive substring match on the entity's
	// display-name column.
	Search string

	// Page and Limit enable pagination when Limit > 0.
	Page  int
	Limit int

	// CategoriaID narrows supply listings.
	CategoriaID *int64

	// TipoProducto narrows product listings.
	TipoProducto *int64
}

// Offset computes the SQL offset for the current page.
func (f ListFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// ListResult is a page of entities plus pagination metadata. For
// unpaginated listings only Items is populated.
type ListResult[T any] struct {
	Items []T  `json:"items"`
	Total int64 `json:"total"`
	Page  int  `json:"page"`
	Pages int  `json:"pages"`
}

// NewListResult fills pagination metadata from a total row count.
func NewListResult[T any](items []T, total int64, filter ListFilter) ListResult[T] {
	res := ListResult[T]{Items: items, Total: total, Page: filter.Page}
	if filter.Limit > 0 {
		res.Pages = int(total) / filter.Limit
		if int(total)%filter.Limit > 0 {
			res.Pages++
		}
	}
	return res
}
