package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/turkcell/product-service/domain/product"
	"github.com/turkcell/product-service/domain/shared"
)

func newTestProduct(t *testing.T, name string) *product.Product {
	t.Helper()
	price, err := shared.NewMoneyFromString("100.00", "TRY")
	if err != nil {
		t.Fatalf("building price: %v", err)
	}
	p, err := product.New(name, "", price, 5, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestSaveInsertAndReload(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()
	p := newTestProduct(t, "Widget")

	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if p.IsNew() {
		t.Error("saved product must not report IsNew")
	}

	loaded, err := repo.FindByID(ctx, p.ProductID())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if loaded.Name() != "Widget" || loaded.Version() != 0 {
		t.Errorf("loaded = %s v%d", loaded.Name(), loaded.Version())
	}
}

func TestSaveThenReloadThenUpdate(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()
	p := newTestProduct(t, "Widget")
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	loaded, err := repo.FindByID(ctx, p.ProductID())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if loaded.IsNew() {
		t.Fatal("reloaded aggregate must not report IsNew")
	}

	// Updating a reloaded aggregate must take the conditional-update
	// branch, not collide with its own stored row.
	if err := loaded.UpdateStock(1); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("update of reloaded aggregate failed: %v", err)
	}
	if loaded.Version() != 1 {
		t.Errorf("version after update = %d, want 1", loaded.Version())
	}
}

func TestSaveRejectsDuplicateName(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, newTestProduct(t, "Widget")); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	err := repo.Save(ctx, newTestProduct(t, "widget"))
	if !errors.Is(err, product.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName for case-insensitive duplicate, got %v", err)
	}
}

func TestSaveAdvancesVersion(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()
	p := newTestProduct(t, "Widget")
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := p.UpdateStock(3); err != nil {
		t.Fatalf("UpdateStock failed: %v", err)
	}
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if p.Version() != 1 {
		t.Errorf("version after update = %d, want 1", p.Version())
	}

	loaded, err := repo.FindByID(ctx, p.ProductID())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if loaded.Version() != 1 {
		t.Errorf("stored version = %d, want 1", loaded.Version())
	}
}

func TestSaveRejectsStaleVersion(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()
	p := newTestProduct(t, "Widget")
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	// Two readers load the same version.
	first, err := repo.FindByID(ctx, p.ProductID())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	second, err := repo.FindByID(ctx, p.ProductID())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}

	if err := first.UpdateStock(1); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("first writer must win: %v", err)
	}

	if err := second.UpdateStock(2); err != nil {
		t.Fatal(err)
	}
	err = repo.Save(ctx, second)
	if !errors.Is(err, product.ErrConcurrentModification) {
		t.Errorf("second writer: expected ErrConcurrentModification, got %v", err)
	}
}

func TestSaveUpdateMissingProduct(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()
	p := newTestProduct(t, "Widget")
	p.ClearNewFlag()

	err := repo.Save(ctx, p)
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestDeleteByID(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()
	p := newTestProduct(t, "Widget")
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := repo.DeleteByID(ctx, p.ProductID()); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, p.ProductID()); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected not-found after delete, got %v", err)
	}
	if err := repo.DeleteByID(ctx, p.ProductID()); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("double delete: expected not-found, got %v", err)
	}
}

func TestExistsHelpers(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()
	p := newTestProduct(t, "Widget")
	other := newTestProduct(t, "Gadget")
	for _, it := range []*product.Product{p, other} {
		if err := repo.Save(ctx, it); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	if ok, _ := repo.ExistsByName(ctx, "Widget"); !ok {
		t.Error("ExistsByName must find Widget")
	}
	if ok, _ := repo.ExistsByNameExcluding(ctx, "Widget", p.ProductID()); ok {
		t.Error("ExistsByNameExcluding must skip the product itself")
	}
	if ok, _ := repo.ExistsByNameExcluding(ctx, "Widget", other.ProductID()); !ok {
		t.Error("ExistsByNameExcluding must find the name on another product")
	}
	if ok, _ := repo.ExistsByID(ctx, p.ProductID()); !ok {
		t.Error("ExistsByID must find saved product")
	}
	if n, _ := repo.Count(ctx); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestFindPageSortsByName(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()
	for _, name := range []string{"Cherry", "Apple", "Banana"} {
		if err := repo.Save(ctx, newTestProduct(t, name)); err != nil {
			t.Fatalf("insert %s failed: %v", name, err)
		}
	}

	page, err := repo.FindPage(ctx, product.PageRequest{
		Page: 0, Size: 10, SortBy: "name", Direction: product.SortAsc,
	})
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}

	want := []string{"Apple", "Banana", "Cherry"}
	for i, p := range page.Items {
		if p.Name() != want[i] {
			t.Errorf("item %d = %s, want %s", i, p.Name(), want[i])
		}
	}
}

func TestFindPagePagination(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := repo.Save(ctx, newTestProduct(t, fmt.Sprintf("Product %d", i))); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	sizes := []int{2, 2, 1, 0}
	for pageNo, wantLen := range sizes {
		page, err := repo.FindPage(ctx, product.PageRequest{Page: pageNo, Size: 2})
		if err != nil {
			t.Fatalf("FindPage(%d) failed: %v", pageNo, err)
		}
		if len(page.Items) != wantLen {
			t.Errorf("page %d has %d items, want %d", pageNo, len(page.Items), wantLen)
		}
		if page.TotalItems != 5 {
			t.Errorf("page %d TotalItems = %d, want 5", pageNo, page.TotalItems)
		}
		if page.TotalPages() != 3 {
			t.Errorf("page %d TotalPages = %d, want 3", pageNo, page.TotalPages())
		}
	}
}

func TestContextCancellation(t *testing.T) {
	repo := NewProductRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Save(ctx, newTestProduct(t, "Widget")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
