// Package limiter 提供令牌桶限流，保护助手接口背后的外部生成服务配额。
package limiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LimitResult 限流结果
type LimitResult struct {
	Allowed    bool          `json:"allowed"`     // 是否允许通过
	Remaining  int64         `json:"remaining"`   // 剩余配额
	RetryAfter time.Duration `json:"retry_after"` // 建议重试时间
}

// Limiter 限流器接口
type Limiter interface {
	// Allow 检查是否允许请求通过
	Allow(ctx context.Context, key string) (*LimitResult, error)

	// Reset 重置限流状态
	Reset(ctx context.Context, key string) error
}

// Config 限流配置
type Config struct {
	Rate      int64         `json:"rate"`       // 速率（请求数/时间窗口）
	Window    time.Duration `json:"window"`     // 时间窗口
	Burst     int64         `json:"burst"`      // 突发容量（令牌桶）
	KeyPrefix string        `json:"key_prefix"` // Key前缀
}

// New 创建令牌桶限流器。
// 提供 Redis 客户端时使用跨实例一致的 Redis 令牌桶；
// 否则退化为进程内令牌桶（单实例部署足够）。
func New(redisClient redis.Cmdable, config *Config) Limiter {
	if config.Burst <= 0 {
		config.Burst = config.Rate
	}
	if redisClient != nil {
		return newRedisTokenBucket(redisClient, config)
	}
	return newMemoryTokenBucket(config)
}
