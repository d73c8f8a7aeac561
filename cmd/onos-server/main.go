package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/ai"
	"github.com/MorseWayne/onos_store/internal/api"
	"github.com/MorseWayne/onos_store/internal/cache"
	"github.com/MorseWayne/onos_store/internal/config"
	"github.com/MorseWayne/onos_store/internal/limiter"
	"github.com/MorseWayne/onos_store/internal/logger"
	"github.com/MorseWayne/onos_store/internal/repo"
	"github.com/MorseWayne/onos_store/internal/router"
	"github.com/MorseWayne/onos_store/internal/service"
	"github.com/MorseWayne/onos_store/internal/store"
)

// initConfigAndLogger 初始化配置和日志器
func initConfigAndLogger() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %v", err)
	}

	// init logger
	lg, err := logger.New(cfg.App.Env, cfg.Log.Level, cfg.Log.Encoding, cfg.App.Name, cfg.App.Version)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %v", err)
	}

	return cfg, lg, nil
}

// initStore 初始化本地数据存储并恢复目录/心愿单
func initStore(cfg *config.Config, lg *zap.Logger) (*store.Store, repo.CatalogRepository, repo.WishlistRepository, error) {
	st, err := store.New(cfg.Data.Dir, lg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize data store: %v", err)
	}

	// 优先恢复持久化目录，缺失或损坏时回退到内置种子数据
	catalogRepo := repo.NewCatalogRepository(st.RestoreOrDefault(repo.DefaultProducts()))
	wishlistRepo := repo.NewWishlistRepository()
	wishlistRepo.Replace(st.RestoreWishlist())

	// 变更即落盘：订阅仓储变更，镜像到本地JSON文件
	catalogRepo.Subscribe(func() {
		if err := st.SaveCatalog(catalogRepo.List()); err != nil {
			lg.Sugar().Errorw("failed to persist catalog", "err", err)
		}
	})
	wishlistRepo.Subscribe(func() {
		if err := st.SaveWishlist(wishlistRepo.Items()); err != nil {
			lg.Sugar().Errorw("failed to persist wishlist", "err", err)
		}
	})

	return st, catalogRepo, wishlistRepo, nil
}

// initCache 初始化缓存实例
func initCache(cfg *config.Config, lg *zap.Logger) cache.Cache {
	var cacheInstance cache.Cache
	if cfg.Cache.Enabled {
		switch cfg.Cache.Type {
		case "redis":
			redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
			redisCache, err := cache.NewRedisCache(redisAddr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				lg.Sugar().Warnw("failed to connect to Redis, falling back to memory cache", "error", err)
				cacheInstance = cache.NewMemoryCache()
				lg.Sugar().Infow("cache enabled", "type", "memory (fallback)", "ttl", cfg.Cache.TTL)
			} else {
				cacheInstance = redisCache
				lg.Sugar().Infow("cache enabled", "type", "redis", "addr", redisAddr, "ttl", cfg.Cache.TTL)
			}
		case "memory":
			cacheInstance = cache.NewMemoryCache()
			lg.Sugar().Infow("cache enabled", "type", "memory", "ttl", cfg.Cache.TTL)
		default:
			lg.Sugar().Warnw("unknown cache type, using memory cache", "type", cfg.Cache.Type)
			cacheInstance = cache.NewMemoryCache()
			lg.Sugar().Infow("cache enabled", "type", "memory (default)", "ttl", cfg.Cache.TTL)
		}
	} else {
		cacheInstance = cache.NewNullCache()
		lg.Sugar().Infow("cache disabled")
	}
	return cacheInstance
}

// initRecommender 初始化推荐客户端；未启用或缺少密钥时返回 nil（助手降级运行）
func initRecommender(ctx context.Context, cfg *config.Config, lg *zap.Logger) ai.Recommender {
	if !cfg.AI.Enabled {
		lg.Sugar().Infow("assistant disabled by config")
		return nil
	}
	if cfg.AI.APIKey == "" {
		lg.Sugar().Warnw("assistant enabled but no API key configured, running degraded")
		return nil
	}

	recommender, err := ai.NewGeminiRecommender(ctx, cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		lg.Sugar().Warnw("failed to initialize recommender, running degraded", "error", err)
		return nil
	}
	lg.Sugar().Infow("assistant enabled", "model", cfg.AI.Model)
	return recommender
}

// initAssistantLimiter 初始化助手接口限流器；Redis缓存可用时复用其连接
func initAssistantLimiter(cfg *config.Config, cacheInstance cache.Cache, lg *zap.Logger) limiter.Limiter {
	if !cfg.RateLimit.Enabled {
		lg.Sugar().Infow("assistant rate limit disabled")
		return nil
	}

	limiterConfig := &limiter.Config{
		Rate:      cfg.RateLimit.Rate,
		Window:    cfg.RateLimit.Window,
		Burst:     cfg.RateLimit.Burst,
		KeyPrefix: "assistant",
	}

	if redisCache, ok := cacheInstance.(*cache.RedisCache); ok {
		lg.Sugar().Infow("assistant rate limit enabled", "backend", "redis",
			"rate", cfg.RateLimit.Rate, "window", cfg.RateLimit.Window)
		return limiter.New(redisCache.Client(), limiterConfig)
	}

	lg.Sugar().Infow("assistant rate limit enabled", "backend", "memory",
		"rate", cfg.RateLimit.Rate, "window", cfg.RateLimit.Window)
	return limiter.New(nil, limiterConfig)
}

// initDependencies 初始化应用依赖（仓储、服务、处理器）
func initDependencies(
	cfg *config.Config,
	catalogRepo repo.CatalogRepository,
	wishlistRepo repo.WishlistRepository,
	recommender ai.Recommender,
	cacheInstance cache.Cache,
	assistantLimiter limiter.Limiter,
	lg *zap.Logger,
) (*router.Dependencies, service.AssistantService) {
	// 依赖注入链：仓储 -> 服务 -> API处理器
	cartRepo := repo.NewCartRepository()

	catalogService := service.NewCatalogService(catalogRepo)
	cartService := service.NewCartService(cartRepo, catalogRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, catalogRepo)
	assistantService := service.NewAssistantService(recommender, catalogRepo, cacheInstance, lg, service.AssistantOptions{
		MinQueryLength: cfg.AI.MinQueryLength,
		DebounceDelay:  cfg.AI.DebounceDelay,
		Fallback:       cfg.AI.FallbackMessage,
		CacheTTL:       cfg.Cache.TTL,
	})

	return &router.Dependencies{
		CatalogHandler:   api.NewCatalogHandler(catalogService, lg),
		CartHandler:      api.NewCartHandler(cartService, lg),
		WishlistHandler:  api.NewWishlistHandler(wishlistService, lg),
		AssistantHandler: api.NewAssistantHandler(assistantService, lg),
		AssistantLimiter: assistantLimiter,
	}, assistantService
}

// startServer 启动服务器并处理优雅关闭
func startServer(cfg *config.Config, handler http.Handler, lg *zap.Logger) {
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	lg.Sugar().Infow("server starting", "addr", addr)
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	// 启动服务器（异步）
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	select {
	case err := <-serverErrCh:
		if err != nil && err != http.ErrServerClosed {
			lg.Sugar().Fatalw("server error", "err", err)
		}
	case <-quit:
		lg.Sugar().Infow("shutdown signal received")
	}

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Sugar().Errorw("server shutdown error", "err", err)
	}
	lg.Sugar().Infow("server exited")
}

// main 为应用入口，协调各个组件的初始化和启动
func main() {
	// 1) 加载配置和初始化日志
	cfg, lg, err := initConfigAndLogger()
	if err != nil {
		log.Fatalf("failed to initialize config and logger: %v", err)
	}

	// 2) 初始化数据存储并恢复目录和心愿单
	_, catalogRepo, wishlistRepo, err := initStore(cfg, lg)
	if err != nil {
		lg.Sugar().Fatalw("failed to initialize data store", "err", err)
	}

	// 3) 初始化缓存
	cacheInstance := initCache(cfg, lg)
	defer func() {
		if err := cacheInstance.Close(); err != nil {
			lg.Sugar().Errorw("failed to close cache", "err", err)
		}
	}()

	// 4) 初始化推荐客户端和助手限流器
	recommender := initRecommender(context.Background(), cfg, lg)
	assistantLimiter := initAssistantLimiter(cfg, cacheInstance, lg)

	// 5) 初始化应用依赖（仓储、服务、处理器）
	deps, assistantService := initDependencies(cfg, catalogRepo, wishlistRepo, recommender, cacheInstance, assistantLimiter, lg)
	defer assistantService.Close()

	// 6) 设置路由和中间件
	handler := router.New().Setup(cfg, deps, lg)

	// 7) 启动 HTTP 服务器
	startServer(cfg, handler, lg)
}
