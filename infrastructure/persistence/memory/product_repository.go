/*
Package memory provides an in-memory repository used for local
development and tests. It honors the same port contract as the MySQL
implementation: conditional version updates and unique product names.
*/
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/turkcell/product-service/domain/product"
)

// ProductRepository keeps aggregates in a mutex-guarded map. Stored
// values are copies, so callers can never mutate stored state through a
// returned aggregate.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*product.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*product.Product),
	}
}

func (r *ProductRepository) clone(p *product.Product) *product.Product {
	cp := *p
	return &cp
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.IsNew() {
		for _, existing := range r.products {
			if strings.EqualFold(existing.Name(), p.Name()) {
				return product.NewDuplicateNameError(p.Name())
			}
		}
		if _, ok := r.products[p.ID()]; ok {
			return product.NewConcurrentModificationError(p.ID())
		}
		// Clear the flag before cloning so reloaded aggregates take the
		// conditional-update branch, not the insert branch.
		p.ClearNewFlag()
		r.products[p.ID()] = r.clone(p)
		return nil
	}

	stored, ok := r.products[p.ID()]
	if !ok {
		return product.NewNotFoundError(p.ID())
	}
	if stored.Version() != p.Version() {
		return product.NewConcurrentModificationError(p.ID())
	}
	for id, existing := range r.products {
		if id != p.ID() && strings.EqualFold(existing.Name(), p.Name()) {
			return product.NewDuplicateNameError(p.Name())
		}
	}

	p.IncrementVersionForSave()
	p.SetUpdatedAt(time.Now().UTC())
	r.products[p.ID()] = r.clone(p)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id product.ID) (*product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.products[id.String()]
	if !ok {
		return nil, product.NewNotFoundError(id.String())
	}
	return r.clone(stored), nil
}

func (r *ProductRepository) FindPage(ctx context.Context, req product.PageRequest) (product.Page, error) {
	if err := ctx.Err(); err != nil {
		return product.Page{}, err
	}
	req = req.Normalized()

	r.mu.RLock()
	all := make([]*product.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, r.clone(p))
	}
	r.mu.RUnlock()

	sortProducts(all, req.SortBy, req.Direction)

	total := int64(len(all))
	start := req.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}

	return product.Page{
		Items:      all[start:end],
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
	}, nil
}

func sortProducts(items []*product.Product, sortBy string, direction product.SortDirection) {
	less := func(a, b *product.Product) bool {
		switch sortBy {
		case "name":
			return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
		case "price", "priceAmount":
			return a.Price().Amount().LessThan(b.Price().Amount())
		case "stockQuantity":
			return a.StockQuantity() < b.StockQuantity()
		case "status":
			return a.Status() < b.Status()
		case "updatedAt":
			return a.UpdatedAt().Before(b.UpdatedAt())
		default:
			return a.CreatedAt().Before(b.CreatedAt())
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if direction == product.SortDesc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id product.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id.String()]; !ok {
		return product.NewNotFoundError(id.String())
	}
	delete(r.products, id.String())
	return nil
}

func (r *ProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if strings.EqualFold(p.Name(), name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProductRepository) ExistsByNameExcluding(ctx context.Context, name string, id product.ID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for storedID, p := range r.products {
		if storedID != id.String() && strings.EqualFold(p.Name(), name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id product.ID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[id.String()]
	return ok, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.products)), nil
}

var _ product.Repository = (*ProductRepository)(nil)
