package product

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/turkcell/product-service/domain/product"
	"github.com/turkcell/product-service/domain/shared"
	"github.com/turkcell/product-service/infrastructure/persistence/memory"
)

func newServices() (*CommandService, *QueryService) {
	repo := memory.NewProductRepository()
	return NewCommandService(repo), NewQueryService(repo)
}

func createRequest(name, amount string) CreateProductRequest {
	return CreateProductRequest{
		Name:          name,
		Description:   "test product",
		PriceAmount:   decPtr(amount),
		PriceCurrency: "TRY",
		StockQuantity: 10,
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateProduct(t *testing.T) {
	cmd, _ := newServices()
	ctx := context.Background()

	resp, err := cmd.CreateProduct(ctx, createRequest("Laptop Pro", "29999.99"))
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	if resp.ID == "" {
		t.Error("response must carry the generated id")
	}
	if resp.Version != 0 {
		t.Errorf("new product version = %d, want 0", resp.Version)
	}
	if resp.Status != "ACTIVE" {
		t.Errorf("default status = %s, want ACTIVE", resp.Status)
	}
	if resp.PriceAmount != "29999.99" || resp.PriceCurrency != "TRY" {
		t.Errorf("price = %s %s", resp.PriceAmount, resp.PriceCurrency)
	}
	if !resp.Available {
		t.Error("active product with stock must be available")
	}
}

func TestCreateProductRoundsPrice(t *testing.T) {
	cmd, _ := newServices()

	resp, err := cmd.CreateProduct(context.Background(), createRequest("Rounding Test", "1.005"))
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if resp.PriceAmount != "1.01" {
		t.Errorf("price 1.005 stored as %s, want 1.01", resp.PriceAmount)
	}
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	cmd, _ := newServices()
	ctx := context.Background()

	if _, err := cmd.CreateProduct(ctx, createRequest("Laptop Pro", "100")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := cmd.CreateProduct(ctx, createRequest("Laptop Pro", "200"))
	if !errors.Is(err, product.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCreateProductRejectsMissingPrice(t *testing.T) {
	cmd, _ := newServices()

	req := createRequest("Laptop Pro", "100")
	req.PriceAmount = nil
	_, err := cmd.CreateProduct(context.Background(), req)
	if !errors.Is(err, product.ErrInvalidPrice) {
		t.Errorf("absent price: expected ErrInvalidPrice, got %v", err)
	}
}

func TestCreateProductAllowsZeroPrice(t *testing.T) {
	cmd, _ := newServices()

	resp, err := cmd.CreateProduct(context.Background(), createRequest("Free Sample", "0"))
	if err != nil {
		t.Fatalf("zero price must be valid: %v", err)
	}
	if resp.PriceAmount != "0.00" {
		t.Errorf("price = %s, want 0.00", resp.PriceAmount)
	}
}

func TestCreateProductRejectsInvalidStatus(t *testing.T) {
	cmd, _ := newServices()

	req := createRequest("Laptop Pro", "100")
	req.Status = "DISCONTINUED"
	_, err := cmd.CreateProduct(context.Background(), req)
	if !errors.Is(err, product.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateProductVersionGate(t *testing.T) {
	cmd, _ := newServices()
	ctx := context.Background()

	created, err := cmd.CreateProduct(ctx, createRequest("Laptop Pro", "100"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Matching version succeeds and advances the version.
	updated, err := cmd.UpdateProduct(ctx, created.ID, UpdateProductRequest{
		StockQuantity: intPtr(3),
		Version:       int64Ptr(created.Version),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Version != created.Version+1 {
		t.Errorf("version = %d, want %d", updated.Version, created.Version+1)
	}

	// Replaying the old version is rejected.
	_, err = cmd.UpdateProduct(ctx, created.ID, UpdateProductRequest{
		StockQuantity: intPtr(4),
		Version:       int64Ptr(created.Version),
	})
	if !errors.Is(err, product.ErrConcurrentModification) {
		t.Errorf("stale version: expected ErrConcurrentModification, got %v", err)
	}
}

func TestUpdateProductPartialMerge(t *testing.T) {
	cmd, _ := newServices()
	ctx := context.Background()

	req := createRequest("Laptop Pro", "100.00")
	req.PriceCurrency = "USD"
	created, err := cmd.CreateProduct(ctx, req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Amount only: currency is kept.
	afterAmount, err := cmd.UpdateProduct(ctx, created.ID, UpdateProductRequest{
		PriceAmount: decPtr("150.00"),
		Version:     int64Ptr(created.Version),
	})
	if err != nil {
		t.Fatalf("amount-only update failed: %v", err)
	}
	if afterAmount.PriceAmount != "150.00" || afterAmount.PriceCurrency != "USD" {
		t.Errorf("after amount-only update: %s %s, want 150.00 USD",
			afterAmount.PriceAmount, afterAmount.PriceCurrency)
	}

	// Currency only: amount is kept.
	afterCurrency, err := cmd.UpdateProduct(ctx, created.ID, UpdateProductRequest{
		PriceCurrency: strPtr("EUR"),
		Version:       int64Ptr(afterAmount.Version),
	})
	if err != nil {
		t.Fatalf("currency-only update failed: %v", err)
	}
	if afterCurrency.PriceAmount != "150.00" || afterCurrency.PriceCurrency != "EUR" {
		t.Errorf("after currency-only update: %s %s, want 150.00 EUR",
			afterCurrency.PriceAmount, afterCurrency.PriceCurrency)
	}

	// Everything else untouched.
	if afterCurrency.Name != created.Name || afterCurrency.StockQuantity != created.StockQuantity {
		t.Error("unrelated fields must keep their stored values")
	}
}

func TestUpdateProductStatusOmittedKeepsCurrent(t *testing.T) {
	cmd, _ := newServices()
	ctx := context.Background()

	req := createRequest("Laptop Pro", "100")
	req.Status = "INACTIVE"
	created, err := cmd.CreateProduct(ctx, req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := cmd.UpdateProduct(ctx, created.ID, UpdateProductRequest{
		StockQuantity: intPtr(7),
		Version:       int64Ptr(created.Version),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != "INACTIVE" {
		t.Errorf("omitted status changed to %s", updated.Status)
	}
}

func TestUpdateProductRejectsDuplicateName(t *testing.T) {
	cmd, _ := newServices()
	ctx := context.Background()

	if _, err := cmd.CreateProduct(ctx, createRequest("Laptop Pro", "100")); err != nil {
		t.Fatal(err)
	}
	other, err := cmd.CreateProduct(ctx, createRequest("Laptop Air", "80"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = cmd.UpdateProduct(ctx, other.ID, UpdateProductRequest{
		Name:    strPtr("Laptop Pro"),
		Version: int64Ptr(other.Version),
	})
	if !errors.Is(err, product.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestUpdateProductDuplicateNameWinsOverStaleVersion(t *testing.T) {
	cmd, _ := newServices()
	ctx := context.Background()

	if _, err := cmd.CreateProduct(ctx, createRequest("Laptop Pro", "100")); err != nil {
		t.Fatal(err)
	}
	other, err := cmd.CreateProduct(ctx, createRequest("Laptop Air", "80"))
	if err != nil {
		t.Fatal(err)
	}

	// Both stale and name-colliding: the name conflict is reported.
	_, err = cmd.UpdateProduct(ctx, other.ID, UpdateProductRequest{
		Name:    strPtr("Laptop Pro"),
		Version: int64Ptr(other.Version + 5),
	})
	if !errors.Is(err, product.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName to win, got %v", err)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	cmd, _ := newServices()

	_, err := cmd.UpdateProduct(context.Background(), product.NewID().String(), UpdateProductRequest{
		Version: int64Ptr(0),
	})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	cmd, query := newServices()
	ctx := context.Background()

	created, err := cmd.CreateProduct(ctx, createRequest("Laptop Pro", "100"))
	if err != nil {
		t.Fatal(err)
	}

	if err := cmd.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := query.GetProductByID(ctx, created.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected not-found after delete, got %v", err)
	}
	if err := cmd.DeleteProduct(ctx, created.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("double delete: expected not-found, got %v", err)
	}
}

func TestDeleteProductInvalidID(t *testing.T) {
	cmd, _ := newServices()

	if err := cmd.DeleteProduct(context.Background(), "nope"); !errors.Is(err, product.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestListProductsPagination(t *testing.T) {
	cmd, query := newServices()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := cmd.CreateProduct(ctx, createRequest(fmt.Sprintf("Product %d", i), "10")); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	sizes := []int{2, 2, 1}
	for pageNo, wantLen := range sizes {
		page, err := query.ListProducts(ctx, ListProductsRequest{Page: pageNo, Size: 2})
		if err != nil {
			t.Fatalf("ListProducts(%d) failed: %v", pageNo, err)
		}
		if len(page.Items) != wantLen {
			t.Errorf("page %d has %d items, want %d", pageNo, len(page.Items), wantLen)
		}
		if page.TotalItems != 5 || page.TotalPages != 3 {
			t.Errorf("page %d totals = %d items / %d pages, want 5 / 3",
				pageNo, page.TotalItems, page.TotalPages)
		}
	}

	// Out-of-range page is empty but keeps the totals.
	page, err := query.ListProducts(ctx, ListProductsRequest{Page: 9, Size: 2})
	if err != nil {
		t.Fatalf("out-of-range page failed: %v", err)
	}
	if len(page.Items) != 0 || page.TotalItems != 5 {
		t.Errorf("out-of-range page: %d items, total %d", len(page.Items), page.TotalItems)
	}
}

func TestListProductsSortByName(t *testing.T) {
	cmd, query := newServices()
	ctx := context.Background()

	for _, name := range []string{"Cherry", "Apple", "Banana"} {
		if _, err := cmd.CreateProduct(ctx, createRequest(name, "10")); err != nil {
			t.Fatal(err)
		}
	}

	page, err := query.ListProducts(ctx, ListProductsRequest{
		Size: 10, SortBy: "name", SortDir: "asc",
	})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}

	want := []string{"Apple", "Banana", "Cherry"}
	for i, item := range page.Items {
		if item.Name != want[i] {
			t.Errorf("item %d = %s, want %s", i, item.Name, want[i])
		}
	}
}

func TestGetProductByIDInvalidID(t *testing.T) {
	_, query := newServices()

	if _, err := query.GetProductByID(context.Background(), "42"); !errors.Is(err, product.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}
