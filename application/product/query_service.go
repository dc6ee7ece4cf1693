package product

import (
	"context"

	"github.com/turkcell/product-service/domain/product"
)

// QueryService orchestrates the read path. Reads never mutate state and
// never take part in the optimistic-concurrency protocol beyond
// returning the current version to clients.
type QueryService struct {
	repo product.Repository
}

func NewQueryService(repo product.Repository) *QueryService {
	return &QueryService{repo: repo}
}

// GetProductByID returns the product or a not-found error.
func (s *QueryService) GetProductByID(ctx context.Context, rawID string) (*ProductResponse, error) {
	id, err := product.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// ListProducts returns one page of the catalog. Out-of-range pages
// yield an empty item list with the real total counts.
func (s *QueryService) ListProducts(ctx context.Context, req ListProductsRequest) (*ProductPageResponse, error) {
	pageReq := product.PageRequest{
		Page:      req.Page,
		Size:      req.Size,
		SortBy:    req.SortBy,
		Direction: product.SortDirection(req.SortDir),
	}

	page, err := s.repo.FindPage(ctx, pageReq)
	if err != nil {
		return nil, err
	}
	return toPageResponse(page), nil
}

// CountProducts returns the catalog size.
func (s *QueryService) CountProducts(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
