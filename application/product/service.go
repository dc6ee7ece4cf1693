/*
Package product contains the application services that orchestrate
catalog use cases over the repository port. CommandService handles
writes, QueryService handles reads; neither contains domain rules
beyond sequencing.
*/
package product

import (
	"context"

	"github.com/turkcell/product-service/domain/product"
	"github.com/turkcell/product-service/domain/shared"
	"github.com/turkcell/product-service/pkg/logger"

	"go.uber.org/zap"
)

// CommandService orchestrates the write path: create, update, delete.
//
// Uniqueness and version checks here are fast-path rejections with
// friendly errors; the repository's unique constraint and conditional
// update remain the correctness guarantee under races.
type CommandService struct {
	repo product.Repository
}

func NewCommandService(repo product.Repository) *CommandService {
	return &CommandService{repo: repo}
}

// CreateProduct validates the payload, rejects duplicate names, and
// persists a fresh aggregate at version 0.
func (s *CommandService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	p, err := newProductFromRequest(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, p.Name())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, product.NewDuplicateNameError(p.Name())
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("Product created",
		zap.String("product_id", p.ID()),
		zap.String("name", p.Name()),
		zap.String("price", p.Price().String()),
	)
	return toResponse(p), nil
}

// UpdateProduct applies a partial update gated on the version the client
// last read. A stale version is rejected before any merge; the
// repository's conditional write re-checks under the store's isolation.
func (s *CommandService) UpdateProduct(ctx context.Context, rawID string, req UpdateProductRequest) (*ProductResponse, error) {
	id, err := product.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Version == nil {
		return nil, shared.NewValidationError("product", "version", "version is required")
	}

	// Name uniqueness is checked before the version gate, so a request
	// that is both stale and name-colliding reports the name conflict.
	if req.Name != nil && *req.Name != p.Name() {
		taken, err := s.repo.ExistsByNameExcluding(ctx, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, product.NewDuplicateNameError(*req.Name)
		}
	}

	if *req.Version != p.Version() {
		return nil, product.NewVersionConflictError(p.ID(), *req.Version, p.Version())
	}

	if err := applyUpdate(p, req); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("Product updated",
		zap.String("product_id", p.ID()),
		zap.Int64("version", p.Version()),
	)
	return toResponse(p), nil
}

// DeleteProduct removes the product. Deletion is not version-gated; a
// missing product is the only failure mode besides store errors.
func (s *CommandService) DeleteProduct(ctx context.Context, rawID string) error {
	id, err := product.ParseID(rawID)
	if err != nil {
		return err
	}

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return product.NewNotFoundError(id.String())
	}

	// DeleteByID re-checks existence, so a racing delete still surfaces as
	// not-found rather than silently succeeding twice.
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}
