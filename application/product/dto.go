package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest is the command payload for creating a product.
// Currency defaults to TRY and status to ACTIVE when omitted. PriceAmount
// is a pointer so an absent price is distinguishable from a zero one;
// only the latter is valid.
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	PriceAmount   *decimal.Decimal `json:"price_amount" binding:"required"`
	PriceCurrency string           `json:"price_currency"`
	StockQuantity int              `json:"stock_quantity" binding:"min=0"`
	Status        string           `json:"status"`
}

// UpdateProductRequest is the command payload for updating a product.
// Every field except Version is optional; an absent field keeps the
// stored value. Price amount and currency merge independently, so a
// client can change the amount without restating the currency. Version
// must carry the value the client last read.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	PriceAmount   *decimal.Decimal `json:"price_amount"`
	PriceCurrency *string          `json:"price_currency"`
	StockQuantity *int             `json:"stock_quantity"`
	Status        *string          `json:"status"`
	Version       *int64           `json:"version" binding:"required"`
}

// ListProductsRequest is the query payload for paginated listings.
// Pages are 0-based; sorting defaults to newest-first.
type ListProductsRequest struct {
	Page    int    `form:"page,default=0" binding:"min=0"`
	Size    int    `form:"size,default=20" binding:"min=0,max=100"`
	SortBy  string `form:"sort_by"`
	SortDir string `form:"sort_dir"`
}

// ProductResponse is the read shape of a product.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PriceAmount   string    `json:"price_amount"`
	PriceCurrency string    `json:"price_currency"`
	PriceDisplay  string    `json:"price_display"`
	StockQuantity int       `json:"stock_quantity"`
	Status        string    `json:"status"`
	Available     bool      `json:"available"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductPageResponse is one page of products with count metadata.
type ProductPageResponse struct {
	Items      []*ProductResponse `json:"items"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalItems int64              `json:"total_items"`
	TotalPages int                `json:"total_pages"`
}
