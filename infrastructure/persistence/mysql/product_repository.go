package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/turkcell/product-service/domain/product"
	"github.com/turkcell/product-service/infrastructure/persistence"
	"github.com/turkcell/product-service/infrastructure/persistence/mysql/po"
	"github.com/turkcell/product-service/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// ProductRepository is the GORM/MySQL implementation of the repository
// port. Save honors the port's compare-and-swap contract: updates are
// conditional on the carried version, and the unique index on name backs
// the application-level uniqueness checks.
//
// Transient store failures (deadlocks, lock wait timeouts) are retried
// inside Save. Version conflicts are never retried here; the client must
// re-fetch and decide.
type ProductRepository struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	cfg := retry.DefaultConfig
	cfg.RetryOnConcurrentModification = false
	return &ProductRepository{db: db, retryConfig: cfg}
}

// SetRetryConfig overrides the transient-failure retry policy.
// RetryOnConcurrentModification is forced off: replaying a stale write
// would defeat the version gate.
func (r *ProductRepository) SetRetryConfig(cfg retry.Config) {
	cfg.RetryOnConcurrentModification = false
	r.retryConfig = cfg
}

func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "1062")
}

// sortColumns whitelists API sort fields to real columns. Anything else
// falls back to created_at.
var sortColumns = map[string]string{
	"name":          "name",
	"price":         "price_amount",
	"priceAmount":   "price_amount",
	"stockQuantity": "stock_quantity",
	"status":        "status",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

func sortColumn(field string) string {
	if col, ok := sortColumns[field]; ok {
		return col
	}
	return "created_at"
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		// Inside a caller-owned transaction retrying is not ours to do.
		return r.saveWithTx(tx, p)
	}
	return retry.ExecuteWithRetry(ctx, r.retryConfig, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return r.saveWithTx(tx, p)
		})
	})
}

func (r *ProductRepository) saveWithTx(tx *gorm.DB, p *product.Product) error {
	productPO := po.FromDomain(p)

	if p.IsNew() {
		if err := tx.Create(productPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return product.NewDuplicateNameError(productPO.Name)
			}
			return product.NewPersistenceError("insert product", err)
		}
		p.ClearNewFlag()
		return nil
	}

	expectedVersion := p.Version()
	now := time.Now().UTC()

	// Strict optimistic locking: the update is keyed on the version read
	// by the caller, so a concurrent writer can never be silently
	// overwritten.
	result := tx.Model(&po.ProductPO{}).
		Where("id = ? AND version = ?", p.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"name":           productPO.Name,
			"description":    productPO.Description,
			"price_amount":   productPO.PriceAmount,
			"price_currency": productPO.PriceCurrency,
			"stock_quantity": productPO.StockQuantity,
			"status":         productPO.Status,
			"version":        expectedVersion + 1,
			"updated_at":     now,
		})

	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return product.NewDuplicateNameError(productPO.Name)
		}
		return product.NewPersistenceError("update product", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&po.ProductPO{}).Where("id = ?", p.ID()).Count(&count).Error; err != nil {
			return product.NewPersistenceError("update product", err)
		}
		if count == 0 {
			return product.NewNotFoundError(p.ID())
		}
		return product.NewConcurrentModificationError(p.ID())
	}

	p.IncrementVersionForSave()
	p.SetUpdatedAt(now)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id product.ID) (*product.Product, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var productPO po.ProductPO
	result := r.getDB(ctx).First(&productPO, "id = ?", id.String())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, product.NewNotFoundError(id.String())
		}
		return nil, product.NewPersistenceError("find product", result.Error)
	}

	return productPO.ToDomain()
}

func (r *ProductRepository) FindPage(ctx context.Context, req product.PageRequest) (product.Page, error) {
	req = req.Normalized()
	db := r.getDB(ctx)

	var total int64
	if err := db.Model(&po.ProductPO{}).Count(&total).Error; err != nil {
		return product.Page{}, product.NewPersistenceError("count products", err)
	}

	order := sortColumn(req.SortBy)
	if req.Direction == product.SortDesc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var productPOs []po.ProductPO
	err := db.Model(&po.ProductPO{}).
		Order(order).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&productPOs).Error
	if err != nil {
		return product.Page{}, product.NewPersistenceError("list products", err)
	}

	items := make([]*product.Product, 0, len(productPOs))
	for i := range productPOs {
		p, err := productPOs[i].ToDomain()
		if err != nil {
			return product.Page{}, err
		}
		items = append(items, p)
	}

	return product.Page{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
	}, nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id product.ID) error {
	result := r.getDB(ctx).Delete(&po.ProductPO{}, "id = ?", id.String())
	if result.Error != nil {
		return product.NewPersistenceError("delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.NewNotFoundError(id.String())
	}
	return nil
}

func (r *ProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, product.NewPersistenceError("check product name", err)
	}
	return count > 0, nil
}

func (r *ProductRepository) ExistsByNameExcluding(ctx context.Context, name string, id product.ID) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("name = ? AND id != ?", name, id.String()).
		Count(&count).Error
	if err != nil {
		return false, product.NewPersistenceError("check product name", err)
	}
	return count > 0, nil
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id product.ID) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("id = ?", id.String()).
		Count(&count).Error
	if err != nil {
		return false, product.NewPersistenceError("check product id", err)
	}
	return count > 0, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.getDB(ctx).Model(&po.ProductPO{}).Count(&count).Error; err != nil {
		return 0, product.NewPersistenceError("count products", err)
	}
	return count, nil
}

var _ product.Repository = (*ProductRepository)(nil)
