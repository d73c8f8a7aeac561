package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/domain"
	"github.com/MorseWayne/onos_store/internal/repo"
	"github.com/MorseWayne/onos_store/internal/service"
)

func newCartHandler() *CartHandler {
	catalogRepo := repo.NewCatalogRepository(handlerCatalog())
	return NewCartHandler(service.NewCartService(repo.NewCartRepository(), catalogRepo), zap.NewNop())
}

func TestCartHandler_AddItem(t *testing.T) {
	h := newCartHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id": "p1"}`))
	rw := httptest.NewRecorder()
	h.AddItem(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	body := decodeEnvelope(t, rw)
	var data struct {
		Cart     *domain.CartSummary `json:"cart"`
		CartOpen bool                `json:"cart_open"`
	}
	if err := json.Unmarshal(body.Data, &data); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if !data.CartOpen {
		t.Errorf("cart_open = false, want true")
	}
	if data.Cart == nil || data.Cart.Count != 1 {
		t.Errorf("cart = %+v, want count 1", data.Cart)
	}

	// 未知商品返回404
	req = httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id": "ghost"}`))
	rw = httptest.NewRecorder()
	h.AddItem(rw, req)
	if rw.Code != http.StatusNotFound {
		t.Errorf("status for unknown product = %d, want 404", rw.Code)
	}

	// 缺少 product_id 返回400
	req = httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{}`))
	rw = httptest.NewRecorder()
	h.AddItem(rw, req)
	if rw.Code != http.StatusBadRequest {
		t.Errorf("status for missing product_id = %d, want 400", rw.Code)
	}
}

func TestCartHandler_AdjustItem(t *testing.T) {
	h := newCartHandler()

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id": "p1"}`))
	h.AddItem(httptest.NewRecorder(), add)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/p1", strings.NewReader(`{"delta": 2}`))
	rw := httptest.NewRecorder()
	h.AdjustItem(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	body := decodeEnvelope(t, rw)
	var summary domain.CartSummary
	if err := json.Unmarshal(body.Data, &summary); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if summary.Count != 3 {
		t.Errorf("count after +2 = %d, want 3", summary.Count)
	}

	// 未知ID为静默无操作，仍返回当前视图
	req = httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/ghost", strings.NewReader(`{"delta": 5}`))
	rw = httptest.NewRecorder()
	h.AdjustItem(rw, req)
	if rw.Code != http.StatusOK {
		t.Errorf("status for unknown ID = %d, want 200 (silent no-op)", rw.Code)
	}
}

func TestCartHandler_RemoveItem(t *testing.T) {
	h := newCartHandler()

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id": "p1"}`))
	h.AddItem(httptest.NewRecorder(), add)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/p1", nil)
	rw := httptest.NewRecorder()
	h.RemoveItem(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	body := decodeEnvelope(t, rw)
	var summary domain.CartSummary
	if err := json.Unmarshal(body.Data, &summary); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Errorf("items after remove = %d, want 0", len(summary.Items))
	}
}
