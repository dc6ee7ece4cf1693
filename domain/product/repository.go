package product

import (
	"context"
	"strings"
)

// SortDirection for paginated listings.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// DefaultSortField is creation time: listings default to newest-first.
	DefaultSortField = "createdAt"
)

// PageRequest describes a 0-based page over the catalog.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction SortDirection
}

// Normalized returns a copy with defaults applied and bounds enforced.
func (r PageRequest) Normalized() PageRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	if strings.TrimSpace(r.SortBy) == "" {
		r.SortBy = DefaultSortField
	}
	if r.Direction != SortAsc && r.Direction != SortDesc {
		r.Direction = SortDesc
	}
	return r
}

// Offset returns the row offset of the page.
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Page is one page of products plus total-count metadata.
type Page struct {
	Items      []*Product
	Page       int
	Size       int
	TotalItems int64
}

// TotalPages derives the page count from the total and the page size.
func (p Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := p.TotalItems / int64(p.Size)
	if p.TotalItems%int64(p.Size) != 0 {
		pages++
	}
	return int(pages)
}

// Repository is the persistence port the orchestrators depend on.
//
// Contract for implementers: Save MUST be an atomic compare-and-swap on
// the version column for existing aggregates: a write succeeds only if
// the stored version still equals the aggregate's carried version, and
// the store advances the version on success. The orchestrator's own
// version comparison is a fast-path rejection, not the correctness
// guarantee. Name uniqueness MUST likewise be backed by a store-level
// unique constraint; ExistsByName is only the friendly error path.
type Repository interface {
	// Save persists the aggregate: insert when IsNew, conditional update
	// keyed on the carried version otherwise. On success the aggregate's
	// version and updatedAt reflect the stored row.
	Save(ctx context.Context, p *Product) error

	// FindByID returns the aggregate or a not-found error.
	FindByID(ctx context.Context, id ID) (*Product, error)

	// FindPage returns one page of products.
	FindPage(ctx context.Context, req PageRequest) (Page, error)

	// DeleteByID removes the aggregate unconditionally (no version gate;
	// deletes are confirmed-existence only).
	DeleteByID(ctx context.Context, id ID) error

	// ExistsByName reports whether any product carries the name.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ExistsByNameExcluding reports whether a product other than id
	// carries the name. Used by the update uniqueness check.
	ExistsByNameExcluding(ctx context.Context, name string, id ID) (bool, error)

	// ExistsByID reports whether the aggregate exists.
	ExistsByID(ctx context.Context, id ID) (bool, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int64, error)
}
