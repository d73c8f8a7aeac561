package store

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, dir
}

func TestStore_CatalogRoundtrip(t *testing.T) {
	s, _ := newTestStore(t)

	original := 1499.00
	products := []*domain.Product{
		{
			ID:            "p1",
			Name:          "Galaxy S25 Ultra",
			Brand:         "Samsung",
			Price:         1299.99,
			OriginalPrice: &original,
			Category:      "phones",
			Rating:        4.8,
			ReviewCount:   1,
			Reviews: []domain.Review{
				{ID: "r1", ReviewerName: "Alice", Rating: 5, Comment: "Great", Date: "2025-06-15"},
			},
		},
		{ID: "p2", Name: "MacBook Air M3", Brand: "Apple", Price: 1099.00, Category: "computers"},
	}

	if err := s.SaveCatalog(products); err != nil {
		t.Fatalf("SaveCatalog() error = %v", err)
	}

	loaded, err := s.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d products, want 2", len(loaded))
	}
	if loaded[0].ID != "p1" || loaded[0].OriginalPrice == nil || *loaded[0].OriginalPrice != original {
		t.Errorf("roundtrip lost fields: %+v", loaded[0])
	}
	if len(loaded[0].Reviews) != 1 || loaded[0].Reviews[0].ReviewerName != "Alice" {
		t.Errorf("roundtrip lost reviews: %+v", loaded[0].Reviews)
	}
}

func TestStore_LoadMissingFileReturnsNil(t *testing.T) {
	s, _ := newTestStore(t)

	products, err := s.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() on missing file error = %v", err)
	}
	if products != nil {
		t.Errorf("LoadCatalog() on missing file = %+v, want nil", products)
	}
}

func TestStore_LoadMalformedFileFails(t *testing.T) {
	s, dir := newTestStore(t)

	if err := os.WriteFile(filepath.Join(dir, CatalogFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadCatalog(); err == nil {
		t.Errorf("LoadCatalog() on malformed file expected error")
	}
}

func TestStore_RestoreOrDefault(t *testing.T) {
	s, dir := newTestStore(t)
	fallback := []*domain.Product{{ID: "seed", Name: "Seed"}}

	// 文件缺失：回退
	if got := s.RestoreOrDefault(fallback); len(got) != 1 || got[0].ID != "seed" {
		t.Errorf("missing file must restore fallback, got %+v", got)
	}

	// 文件损坏：回退而非失败
	if err := os.WriteFile(filepath.Join(dir, CatalogFile), []byte("[[["), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := s.RestoreOrDefault(fallback); len(got) != 1 || got[0].ID != "seed" {
		t.Errorf("corrupt file must restore fallback, got %+v", got)
	}

	// 正常文件：优先于默认值
	if err := s.SaveCatalog([]*domain.Product{{ID: "saved", Name: "Saved"}}); err != nil {
		t.Fatal(err)
	}
	if got := s.RestoreOrDefault(fallback); len(got) != 1 || got[0].ID != "saved" {
		t.Errorf("persisted state must win over fallback, got %+v", got)
	}
}

func TestStore_RestoreWishlistStartsEmpty(t *testing.T) {
	s, dir := newTestStore(t)

	if got := s.RestoreWishlist(); len(got) != 0 {
		t.Errorf("missing wishlist must restore empty, got %+v", got)
	}

	if err := os.WriteFile(filepath.Join(dir, WishlistFile), []byte("oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := s.RestoreWishlist(); len(got) != 0 {
		t.Errorf("corrupt wishlist must restore empty, got %+v", got)
	}
}

func TestStore_SaveNilWritesEmptyArray(t *testing.T) {
	s, dir := newTestStore(t)

	if err := s.SaveWishlist(nil); err != nil {
		t.Fatalf("SaveWishlist(nil) error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, WishlistFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("nil slice must persist as empty array, got %q", string(data))
	}
}
