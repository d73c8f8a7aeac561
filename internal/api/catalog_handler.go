// Package api 提供商品目录相关的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/domain"
	"github.com/MorseWayne/onos_store/internal/middleware"
	"github.com/MorseWayne/onos_store/internal/resp"
	"github.com/MorseWayne/onos_store/internal/service"
)

// 导入载荷的大小上限，防止异常大文件拖垮内存。
const maxImportBytes = 8 << 20 // 8 MiB

// CatalogHandler 商品目录相关的HTTP处理器
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler 创建目录处理器实例
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListProducts 获取过滤后的商品列表
// GET /api/v1/products?query=phone&category=phones&brands=Samsung,Apple&price_min=0&price_max=2000&min_rating=4
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	filter := &domain.ProductFilter{}
	query := r.URL.Query()

	filter.Query = strings.TrimSpace(query.Get("query"))
	filter.Category = query.Get("category")

	if brands := query.Get("brands"); brands != "" {
		for _, b := range strings.Split(brands, ",") {
			if s := strings.TrimSpace(b); s != "" {
				filter.Brands = append(filter.Brands, s)
			}
		}
	}

	if v := query.Get("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			filter.PriceMin = f
		} else {
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid price_min", reqID, "")
			return
		}
	}

	if v := query.Get("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			filter.PriceMax = f
		} else {
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid price_max", reqID, "")
			return
		}
	}

	if v := query.Get("min_rating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 5 {
			filter.MinRating = f
		} else {
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid min_rating", reqID, "")
			return
		}
	}

	products := h.catalogService.ListProducts(filter)
	result := map[string]any{
		"products": products,
		"total":    len(products),
	}
	resp.OK(w, &result, reqID, "")
}

// GetProduct 获取商品详情
// GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id := productIDFromPath(r.URL.Path)
	if id == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("get product failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get product failed", reqID, "")
		return
	}

	resp.OK(w, product, reqID, "")
}

// SubmitReview 提交商品评价
// POST /api/v1/products/{id}/reviews
func (h *CatalogHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id := productIDFromPath(strings.TrimSuffix(r.URL.Path, "/reviews"))
	if id == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	var req domain.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	product, err := h.catalogService.SubmitReview(id, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "rating must be") {
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, err.Error(), reqID, "")
			return
		}

		h.logger.Error("submit review failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "submit review failed", reqID, "")
		return
	}

	resp.OK(w, product, reqID, "")
}

// ListCategories 获取分类参考列表
// GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	categories := h.catalogService.Categories()
	resp.OK(w, &categories, reqID, "")
}

// ListBrands 获取目录中的品牌列表
// GET /api/v1/brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	brands := h.catalogService.Brands()
	if brands == nil {
		brands = []string{}
	}
	resp.OK(w, &brands, reqID, "")
}

// ExportCatalog 导出完整目录为可下载的JSON文档
// GET /api/v1/catalog/export
func (h *CatalogHandler) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	data, err := h.catalogService.ExportCatalog()
	if err != nil {
		h.logger.Error("export catalog failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "export catalog failed", reqID, "")
		return
	}

	// 导出是原始目录文档下载，不套响应信封
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="onos_catalog.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportCatalog 导入目录（整体替换）
// POST /api/v1/catalog/import
// 载荷必须是商品数组；非数组输入被拒绝且目录保持不变。
func (h *CatalogHandler) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "failed to read request body", reqID, "")
		return
	}

	count, err := h.catalogService.ImportCatalog(data)
	if err != nil {
		if strings.Contains(err.Error(), "invalid catalog format") {
			h.logger.Warn("catalog import rejected", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, err.Error(), reqID, "")
			return
		}

		h.logger.Error("import catalog failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "import catalog failed", reqID, "")
		return
	}

	h.logger.Info("catalog imported", zap.String("request_id", reqID), zap.Int("products", count))
	result := map[string]any{"imported": count}
	resp.OK(w, &result, reqID, "")
}

// productIDFromPath 从 /api/v1/products/{id} 形式的路径中提取商品ID。
func productIDFromPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 5 {
		return ""
	}
	return parts[4]
}
