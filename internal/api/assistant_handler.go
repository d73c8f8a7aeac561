// Package api 推荐/聊天助手相关的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/middleware"
	"github.com/MorseWayne/onos_store/internal/resp"
	"github.com/MorseWayne/onos_store/internal/service"
)

// AssistantHandler 助手相关的HTTP处理器
type AssistantHandler struct {
	assistantService service.AssistantService
	logger           *zap.Logger
}

// NewAssistantHandler 创建助手处理器实例
func NewAssistantHandler(assistantService service.AssistantService, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		logger:           logger,
	}
}

// Search 更新查询文本并调度防抖的推荐拉取
// POST /api/v1/assistant/search
// 返回当前推荐状态；推荐结果在防抖间隔后异步到达。
func (h *AssistantHandler) Search(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	h.assistantService.SetQuery(req.Query)
	resp.OK(w, h.assistantService.Recommendations(), reqID, "")
}

// Recommendations 获取当前推荐状态
// GET /api/v1/assistant/recommendations
func (h *AssistantHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	resp.OK(w, h.assistantService.Recommendations(), reqID, "")
}

// Chat 同步聊天
// POST /api/v1/assistant/chat
// 外部服务故障降级为固定兜底回复，该接口不产生5xx。
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "message is required", reqID, "")
		return
	}

	reply := h.assistantService.Chat(r.Context(), req.Message)
	result := map[string]any{"reply": reply}
	resp.OK(w, &result, reqID, "")
}
