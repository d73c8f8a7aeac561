// Package router 提供 HTTP 路由设置和中间件配置功能
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/api"
	"github.com/MorseWayne/onos_store/internal/config"
	"github.com/MorseWayne/onos_store/internal/limiter"
	mw "github.com/MorseWayne/onos_store/internal/middleware"
)

// Dependencies 包含路由设置所需的所有依赖
type Dependencies struct {
	CatalogHandler   *api.CatalogHandler
	CartHandler      *api.CartHandler
	WishlistHandler  *api.WishlistHandler
	AssistantHandler *api.AssistantHandler

	// AssistantLimiter 助手接口限流器；为 nil 时不挂载限流中间件
	AssistantLimiter limiter.Limiter
}

// Router 路由器接口
type Router interface {
	Setup(cfg *config.Config, deps *Dependencies, lg *zap.Logger) http.Handler
}

// GinRouter Gin路由器实现
type GinRouter struct {
	engine *gin.Engine
	deps   *Dependencies
}

// New 创建新的路由器实例
func New() Router {
	return &GinRouter{}
}

// Setup 设置路由和中间件
func (r *GinRouter) Setup(cfg *config.Config, deps *Dependencies, lg *zap.Logger) http.Handler {
	// 根据环境设置 Gin 模式
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r.engine = gin.New()
	r.deps = deps

	r.setupRoutes(cfg)

	// 构建中间件链：请求进入时执行顺序为 access log → CORS → timeout → recovery → request ID
	var handler http.Handler = r.engine
	handler = mw.RequestID(handler)
	handler = mw.Recovery(lg)(handler)
	handler = mw.Timeout(cfg.App.RequestTimeout)(handler)
	handler = mw.CORS(mw.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
	})(handler)
	handler = mw.AccessLog(lg)(handler)

	return handler
}

// setupRoutes 设置所有路由
func (r *GinRouter) setupRoutes(cfg *config.Config) {
	// 健康检查
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": cfg.App.Version,
		})
	})

	// API v1 路由组
	v1 := r.engine.Group("/api/v1")
	{
		// 目录路由（公开）
		products := v1.Group("/products")
		{
			products.GET("", r.wrapHandler(r.deps.CatalogHandler.ListProducts))
			products.GET("/:id", r.wrapHandler(r.deps.CatalogHandler.GetProduct))
			products.POST("/:id/reviews", r.wrapHandler(r.deps.CatalogHandler.SubmitReview))
		}
		v1.GET("/categories", r.wrapHandler(r.deps.CatalogHandler.ListCategories))
		v1.GET("/brands", r.wrapHandler(r.deps.CatalogHandler.ListBrands))

		// 目录导入导出
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/export", r.wrapHandler(r.deps.CatalogHandler.ExportCatalog))
			catalog.POST("/import", r.wrapHandler(r.deps.CatalogHandler.ImportCatalog))
		}

		// 购物车路由
		cart := v1.Group("/cart")
		{
			cart.GET("", r.wrapHandler(r.deps.CartHandler.GetCart))
			cart.POST("/items", r.wrapHandler(r.deps.CartHandler.AddItem))
			cart.PUT("/items/:id", r.wrapHandler(r.deps.CartHandler.AdjustItem))
			cart.DELETE("/items/:id", r.wrapHandler(r.deps.CartHandler.RemoveItem))
		}

		// 心愿单路由
		wishlist := v1.Group("/wishlist")
		{
			wishlist.GET("", r.wrapHandler(r.deps.WishlistHandler.GetWishlist))
			wishlist.POST("/toggle", r.wrapHandler(r.deps.WishlistHandler.Toggle))
			wishlist.DELETE("/:id", r.wrapHandler(r.deps.WishlistHandler.Remove))
		}

		// 助手路由（可选限流，保护外部生成服务配额）
		assistant := v1.Group("/assistant")
		if r.deps.AssistantLimiter != nil {
			assistant.Use(limiter.AssistantRateLimitMiddleware(r.deps.AssistantLimiter))
		}
		{
			assistant.POST("/search", r.wrapHandler(r.deps.AssistantHandler.Search))
			assistant.GET("/recommendations", r.wrapHandler(r.deps.AssistantHandler.Recommendations))
			assistant.POST("/chat", r.wrapHandler(r.deps.AssistantHandler.Chat))
		}
	}
}

// wrapHandler 将标准的 http.HandlerFunc 包装为 gin.HandlerFunc
func (r *GinRouter) wrapHandler(handler func(http.ResponseWriter, *http.Request)) gin.HandlerFunc {
	return gin.WrapF(handler)
}
