package product

import (
	"github.com/turkcell/product-service/domain/product"
	"github.com/turkcell/product-service/domain/shared"
)

// newProductFromRequest builds a fresh aggregate from the create payload.
func newProductFromRequest(req CreateProductRequest) (*product.Product, error) {
	status := product.Status("")
	if req.Status != "" {
		parsed, err := product.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	if req.PriceAmount == nil {
		return nil, product.NewValidationError(product.ErrInvalidPrice, "price", "product price is required")
	}
	price, err := shared.NewMoney(*req.PriceAmount, req.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return product.New(req.Name, req.Description, price, req.StockQuantity, status)
}

// applyUpdate merges the partial payload onto the aggregate. Absent
// fields keep their stored values; price amount and currency merge
// independently.
func applyUpdate(p *product.Product, req UpdateProductRequest) error {
	name := p.Name()
	if req.Name != nil {
		name = *req.Name
	}

	description := p.Description()
	if req.Description != nil {
		description = *req.Description
	}

	price := p.Price()
	if req.PriceAmount != nil || req.PriceCurrency != nil {
		amount := price.Amount()
		if req.PriceAmount != nil {
			amount = *req.PriceAmount
		}
		currency := price.Currency()
		if req.PriceCurrency != nil {
			currency = *req.PriceCurrency
		}
		merged, err := shared.NewMoney(amount, currency)
		if err != nil {
			return err
		}
		price = merged
	}

	stock := p.StockQuantity()
	if req.StockQuantity != nil {
		stock = *req.StockQuantity
	}

	status := product.Status("")
	if req.Status != nil && *req.Status != "" {
		parsed, err := product.ParseStatus(*req.Status)
		if err != nil {
			return err
		}
		status = parsed
	}

	return p.Update(name, description, price, stock, status)
}

// toResponse converts the aggregate to its read shape.
func toResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		PriceAmount:   p.Price().Amount().StringFixed(2),
		PriceCurrency: p.Price().Currency(),
		PriceDisplay:  p.Price().String(),
		StockQuantity: p.StockQuantity(),
		Status:        string(p.Status()),
		Available:     p.IsAvailable(),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

// toPageResponse converts one repository page to its read shape.
func toPageResponse(page product.Page) *ProductPageResponse {
	items := make([]*ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toResponse(p))
	}
	return &ProductPageResponse{
		Items:      items,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages(),
	}
}
