// Package api 购物车相关的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/domain"
	"github.com/MorseWayne/onos_store/internal/middleware"
	"github.com/MorseWayne/onos_store/internal/resp"
	"github.com/MorseWayne/onos_store/internal/service"
)

// CartHandler 购物车相关的HTTP处理器
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler 创建购物车处理器实例
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// GetCart 获取购物车视图
// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	resp.OK(w, h.cartService.Summary(), reqID, "")
}

// AddItem 将商品加入购物车
// POST /api/v1/cart/items
// 响应携带 cart_open 提示，客户端据此打开购物车面板（面板状态不归台账管）。
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.ProductID == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product_id is required", reqID, "")
		return
	}

	summary, err := h.cartService.Add(req.ProductID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("add to cart failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "add to cart failed", reqID, "")
		return
	}

	result := map[string]any{
		"cart":      summary,
		"cart_open": true,
	}
	resp.OK(w, &result, reqID, "")
}

// AdjustItem 按增量调整条目数量
// PUT /api/v1/cart/items/{id}
// ID 不存在时为静默无操作，返回当前购物车视图。
func (h *CartHandler) AdjustItem(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id := cartItemIDFromPath(r.URL.Path)
	if id == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	var req domain.AdjustCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	resp.OK(w, h.cartService.Adjust(id, req.Delta), reqID, "")
}

// RemoveItem 删除购物车条目
// DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id := cartItemIDFromPath(r.URL.Path)
	if id == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	resp.OK(w, h.cartService.Remove(id), reqID, "")
}

// cartItemIDFromPath 从 /api/v1/cart/items/{id} 形式的路径中提取商品ID。
func cartItemIDFromPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 6 {
		return ""
	}
	return parts[5]
}
