// Package resp 提供统一的 JSON 响应封装。
// 所有处理器通过 OK/Error 输出一致的响应信封，便于客户端统一解析。
package resp

import (
	"encoding/json"
	"net/http"
)

// Code 业务状态码，0 表示成功。
type Code int

const (
	CodeOK            Code = 0    // 成功
	CodeInvalidParam  Code = 1001 // 参数错误
	CodeNotFound      Code = 1002 // 资源不存在
	CodeInternalError Code = 2001 // 内部错误
	CodeTimeout       Code = 2002 // 请求超时
	CodeUnavailable   Code = 2003 // 依赖服务不可用
)

// Body 统一响应信封。
type Body struct {
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
}

// HTTPStatusFromCode 将业务状态码映射为 HTTP 状态码。
func HTTPStatusFromCode(code Code) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// OK 输出成功响应。
func OK(w http.ResponseWriter, data any, requestID, traceID string) {
	write(w, http.StatusOK, &Body{
		Code:      CodeOK,
		Message:   "ok",
		Data:      data,
		RequestID: requestID,
		TraceID:   traceID,
	})
}

// Error 输出错误响应。
func Error(w http.ResponseWriter, httpStatus int, code Code, message, requestID, traceID string) {
	write(w, httpStatus, &Body{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		TraceID:   traceID,
	})
}

func write(w http.ResponseWriter, status int, body *Body) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// 编码失败时响应头已发出，只能放弃；信封结构不含不可序列化类型
	_ = json.NewEncoder(w).Encode(body)
}
