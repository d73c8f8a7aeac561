package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/repo"
	"github.com/MorseWayne/onos_store/internal/service"
)

func newWishlistHandler() *WishlistHandler {
	catalogRepo := repo.NewCatalogRepository(handlerCatalog())
	return NewWishlistHandler(service.NewWishlistService(repo.NewWishlistRepository(), catalogRepo), zap.NewNop())
}

func toggleWishlist(t *testing.T, h *WishlistHandler, productID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/toggle",
		strings.NewReader(`{"product_id": "`+productID+`"}`))
	rw := httptest.NewRecorder()
	h.Toggle(rw, req)
	return rw
}

func TestWishlistHandler_ToggleRoundtrip(t *testing.T) {
	h := newWishlistHandler()

	rw := toggleWishlist(t, h, "p1")
	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	var data struct {
		Added bool `json:"added"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rw).Data, &data); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if !data.Added {
		t.Errorf("first toggle added = false, want true")
	}

	// 再次切换移除
	rw = toggleWishlist(t, h, "p1")
	if err := json.Unmarshal(decodeEnvelope(t, rw).Data, &data); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if data.Added {
		t.Errorf("second toggle added = true, want false")
	}

	// 未知商品返回404
	rw = toggleWishlist(t, h, "ghost")
	if rw.Code != http.StatusNotFound {
		t.Errorf("status for unknown product = %d, want 404", rw.Code)
	}
}

func TestWishlistHandler_GetWishlist(t *testing.T) {
	h := newWishlistHandler()
	toggleWishlist(t, h, "p1")
	toggleWishlist(t, h, "p2")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil)
	rw := httptest.NewRecorder()
	h.GetWishlist(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	var data struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rw).Data, &data); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if data.Count != 2 {
		t.Errorf("count = %d, want 2", data.Count)
	}
}

func TestWishlistHandler_Remove(t *testing.T) {
	h := newWishlistHandler()
	toggleWishlist(t, h, "p1")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/wishlist/p1", nil)
	rw := httptest.NewRecorder()
	h.Remove(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}

	get := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil)
	getRW := httptest.NewRecorder()
	h.GetWishlist(getRW, get)
	var data struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, getRW).Data, &data); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if data.Count != 0 {
		t.Errorf("count after remove = %d, want 0", data.Count)
	}
}
