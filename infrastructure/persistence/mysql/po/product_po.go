package po

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/turkcell/product-service/domain/product"
	"github.com/turkcell/product-service/domain/shared"
)

// ProductPO is the persistence shape of the Product aggregate.
//
// Schema contract: unique constraint on name, non-negative checks on
// price_amount and stock_quantity, and a version column advanced only by
// the conditional update in the repository.
type ProductPO struct {
	ID            string          `gorm:"primaryKey;size:36"`
	Name          string          `gorm:"size:128;uniqueIndex;not null"`
	Description   string          `gorm:"size:1000"`
	PriceAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;check:price_amount >= 0"`
	PriceCurrency string          `gorm:"size:3;not null"`
	StockQuantity int             `gorm:"not null;check:stock_quantity >= 0"`
	Status        string          `gorm:"size:16;not null"`
	Version       int64           `gorm:"not null;default:0"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (ProductPO) TableName() string {
	return "products"
}

// FromDomain maps the aggregate to its persistence shape.
func FromDomain(p *product.Product) *ProductPO {
	return &ProductPO{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		PriceAmount:   p.Price().Amount(),
		PriceCurrency: p.Price().Currency(),
		StockQuantity: p.StockQuantity(),
		Status:        string(p.Status()),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

// ToDomain rebuilds the aggregate from a stored row.
func (po *ProductPO) ToDomain() (*product.Product, error) {
	id, err := product.ParseID(po.ID)
	if err != nil {
		return nil, err
	}
	price, err := shared.NewMoney(po.PriceAmount, po.PriceCurrency)
	if err != nil {
		return nil, err
	}
	return product.Rebuild(product.ReconstructionDTO{
		ID:            id,
		Name:          po.Name,
		Description:   po.Description,
		Price:         price,
		StockQuantity: po.StockQuantity,
		Status:        product.Status(po.Status),
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
		Version:       po.Version,
	}), nil
}
