package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS_SetsHeadersAndShortCircuitsPreflight(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}

	called := false
	handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	// 普通请求：设置头并继续
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	if !called {
		t.Errorf("non-preflight request must reach the next handler")
	}
	if got := rw.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rw.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Errorf("Allow-Methods = %q", got)
	}

	// 预检请求：204 短路，不触达业务处理器
	called = false
	req = httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	rw = httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	if called {
		t.Errorf("preflight request must not reach the next handler")
	}
	if rw.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rw.Code)
	}
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	// 未携带请求ID：生成并写入响应头与上下文
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	if seen == "" {
		t.Errorf("request ID must be injected into the context")
	}
	if got := rw.Header().Get(HeaderRequestID); got != seen {
		t.Errorf("response header ID = %q, context ID = %q; must match", got, seen)
	}

	// 已携带请求ID：原样透传
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-supplied-id")
	rw = httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	if seen != "client-supplied-id" {
		t.Errorf("client-supplied ID must be preserved, got %q", seen)
	}
}
