// Package api 心愿单相关的HTTP API处理器实现。
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

// WishlistHandler 心愿单相关的HTTP处理器
type WishlistHandler struct {
	wishlistService service.WishlistService
	logger          *zap.Logger
}

// NewWishlistHandler 创建心愿单处理器实例
func NewWishlistHandler(wishlistService service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// GetWishlist 获取心愿单
// GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	items := h.wishlistService.Items()
	result := map[string]any{
		"items": items,
		"count": len(items),
	}
	resp.OK(w, &result, reqID, "")
}

// Toggle 切换商品的心愿单状态
// POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req domain.ToggleWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.ProductID == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "product_id is required", reqID, "")
		return
	}

	added, err := h.wishlistService.Toggle(req.ProductID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("toggle wishlist failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "toggle wishlist failed", reqID, "")
		return
	}

	result := map[string]any{"added": added}
	resp.OK(w, &result, reqID, "")
}

// Remove 删除心愿单条目
// DELETE /api/v1/wishlist/{id}
// ID 不存在时为静默无操作。
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	h.wishlistService.Remove(parts[4])
	result := map[string]any{"removed": true}
	resp.OK(w, &result, reqID, "")
}
