package product

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/turkcell/product-service/domain/shared"
)

// Product is the catalog aggregate root.
//
// All fields are private; state changes go through behavior methods that
// re-validate the affected invariants and refresh updatedAt. The version
// field is only carried here for the optimistic-concurrency comparison;
// it is advanced by the repository after a successful write, never by the
// aggregate itself.
type Product struct {
	id            ID
	name          string
	description   string
	price         shared.Money
	stockQuantity int
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
	version       int64

	isNew bool
}

// New creates a product with a fresh identifier, current timestamps,
// version 0, and the default status when status is empty. Fails with a
// field-scoped validation error on any invariant violation.
func New(name, description string, price shared.Money, stockQuantity int, status Status) (*Product, error) {
	if status == "" {
		status = DefaultStatus()
	}

	now := time.Now().UTC()
	p := &Product{
		id:            NewID(),
		name:          name,
		description:   description,
		price:         price,
		stockQuantity: stockQuantity,
		status:        status,
		createdAt:     now,
		updatedAt:     now,
		version:       0,
		isNew:         true,
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces all mutable fields atomically and re-validates.
// An empty status keeps the current one. The version is left untouched;
// gating stale writes is the orchestrator's and the store's concern.
func (p *Product) Update(name, description string, price shared.Money, stockQuantity int, status Status) error {
	if status == "" {
		status = p.status
	}

	prev := *p
	p.name = name
	p.description = description
	p.price = price
	p.stockQuantity = stockQuantity
	p.status = status

	if err := p.validate(); err != nil {
		*p = prev
		return err
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

// UpdateStock replaces the stock quantity only.
func (p *Product) UpdateStock(quantity int) error {
	if quantity < 0 {
		return NewValidationError(ErrInvalidStock, "stockQuantity",
			fmt.Sprintf("stock quantity must be non-negative, got: %d", quantity))
	}
	p.stockQuantity = quantity
	p.updatedAt = time.Now().UTC()
	return nil
}

// Activate marks the product available for sale. Status alone cannot
// violate the other invariants, so no re-validation is needed.
func (p *Product) Activate() {
	p.status = StatusActive
	p.updatedAt = time.Now().UTC()
}

// Deactivate withdraws the product from sale.
func (p *Product) Deactivate() {
	p.status = StatusInactive
	p.updatedAt = time.Now().UTC()
}

// IsAvailable reports whether the product can be purchased: active with
// stock on hand.
func (p *Product) IsAvailable() bool {
	return p.status.IsActive() && p.stockQuantity > 0
}

// IsOutOfStock reports whether the stock quantity is zero.
func (p *Product) IsOutOfStock() bool {
	return p.stockQuantity == 0
}

func (p *Product) validate() error {
	if err := p.validateName(); err != nil {
		return err
	}
	if err := p.validateDescription(); err != nil {
		return err
	}
	if err := p.validatePrice(); err != nil {
		return err
	}
	return p.validateStock()
}

func (p *Product) validateName() error {
	trimmed := strings.TrimSpace(p.name)
	if trimmed == "" {
		return NewValidationError(ErrInvalidName, "name", "product name cannot be empty")
	}
	// Limits are in characters, not bytes, so multi-byte names count fairly.
	length := utf8.RuneCountInString(trimmed)
	if length < 2 {
		return NewValidationError(ErrInvalidName, "name", "product name must be at least 2 characters long")
	}
	if length > 128 {
		return NewValidationError(ErrInvalidName, "name", "product name cannot exceed 128 characters")
	}
	return nil
}

func (p *Product) validateDescription() error {
	if utf8.RuneCountInString(strings.TrimSpace(p.description)) > 1000 {
		return NewValidationError(ErrInvalidDescription, "description",
			"product description cannot exceed 1000 characters")
	}
	return nil
}

func (p *Product) validatePrice() error {
	if !p.price.IsSet() {
		return NewValidationError(ErrInvalidPrice, "price", "product price cannot be empty")
	}
	// Money construction already rejects negative amounts; this guards
	// against rebuilt aggregates bypassing NewMoney.
	if p.price.Amount().IsNegative() {
		return NewValidationError(ErrInvalidPrice, "price", "product price must be non-negative")
	}
	return nil
}

func (p *Product) validateStock() error {
	if p.stockQuantity < 0 {
		return NewValidationError(ErrInvalidStock, "stockQuantity",
			fmt.Sprintf("stock quantity must be non-negative, got: %d", p.stockQuantity))
	}
	return nil
}

// Read accessors. Fields stay private; only behavior methods mutate.
func (p *Product) ID() string            { return p.id.String() }
func (p *Product) ProductID() ID         { return p.id }
func (p *Product) Name() string          { return p.name }
func (p *Product) Description() string   { return p.description }
func (p *Product) Price() shared.Money   { return p.price }
func (p *Product) StockQuantity() int    { return p.stockQuantity }
func (p *Product) Status() Status        { return p.status }
func (p *Product) CreatedAt() time.Time  { return p.createdAt }
func (p *Product) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Product) Version() int64        { return p.version }

// Equals compares identity only; value fields do not affect equality.
func (p *Product) Equals(other *Product) bool {
	if other == nil {
		return false
	}
	return p.id.Equals(other.id)
}

// IsNew reports whether the aggregate has never been persisted. The
// repository uses it to choose between insert and conditional update.
func (p *Product) IsNew() bool {
	return p.isNew
}

// ClearNewFlag is called by the repository after the first insert.
func (p *Product) ClearNewFlag() {
	p.isNew = false
}

// IncrementVersionForSave advances the carried version after the store
// accepted a compare-and-swap write. Repository use only.
func (p *Product) IncrementVersionForSave() {
	p.version++
}

// SetUpdatedAt lets the repository align the aggregate with the stored
// timestamp. Repository use only.
func (p *Product) SetUpdatedAt(t time.Time) {
	p.updatedAt = t
}

func (p *Product) String() string {
	return fmt.Sprintf("Product{id=%s, name=%q, price=%s, status=%s}", p.id, p.name, p.price, p.status)
}

// ReconstructionDTO carries stored state for rebuilding the aggregate.
// Repository implementations only; never use from the application layer.
type ReconstructionDTO struct {
	ID            ID
	Name          string
	Description   string
	Price         shared.Money
	StockQuantity int
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

// Rebuild reconstructs a persisted aggregate without re-running creation
// side effects. Stored state is trusted; invariants were checked on the
// way in and are enforced again on the next mutation.
func Rebuild(dto ReconstructionDTO) *Product {
	return &Product{
		id:            dto.ID,
		name:          dto.Name,
		description:   dto.Description,
		price:         dto.Price,
		stockQuantity: dto.StockQuantity,
		status:        dto.Status,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
		version:       dto.Version,
		isNew:         false,
	}
}

var _ shared.AggregateRoot = (*Product)(nil)
