// Package limiter 进程内令牌桶限流器实现。
package limiter

import (
	"context"
	"math"
	"sync"
	"time"
)

// memoryTokenBucket 进程内令牌桶，未配置 Redis 时使用。
type memoryTokenBucket struct {
	config *Config

	mu      sync.Mutex
	buckets map[string]*bucketState
	now     func() time.Time // 测试可替换的时钟
}

type bucketState struct {
	tokens     float64
	lastRefill time.Time
}

func newMemoryTokenBucket(config *Config) *memoryTokenBucket {
	return &memoryTokenBucket{
		config:  config,
		buckets: make(map[string]*bucketState),
		now:     time.Now,
	}
}

// Allow 检查是否允许请求通过
func (tb *memoryTokenBucket) Allow(ctx context.Context, key string) (*LimitResult, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	b, exists := tb.buckets[key]
	if !exists {
		b = &bucketState{
			tokens:     float64(tb.config.Burst),
			lastRefill: now,
		}
		tb.buckets[key] = b
	}

	// 按经过时间补充令牌
	elapsed := now.Sub(b.lastRefill).Seconds()
	refill := elapsed * float64(tb.config.Rate) / tb.config.Window.Seconds()
	b.tokens = math.Min(float64(tb.config.Burst), b.tokens+refill)
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return &LimitResult{
			Allowed:   true,
			Remaining: int64(b.tokens),
		}, nil
	}

	retryAfter := time.Duration(math.Ceil(tb.config.Window.Seconds()/float64(tb.config.Rate))) * time.Second
	return &LimitResult{
		Allowed:    false,
		Remaining:  0,
		RetryAfter: retryAfter,
	}, nil
}

// Reset 重置限流状态
func (tb *memoryTokenBucket) Reset(ctx context.Context, key string) error {
	tb.mu.Lock()
	delete(tb.buckets, key)
	tb.mu.Unlock()
	return nil
}
