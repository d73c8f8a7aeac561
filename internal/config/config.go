// Package config 提供基于环境变量的应用配置加载。
// 支持通过 .env 文件注入本地开发配置（godotenv）。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig 应用基础配置。
type AppConfig struct {
	Name            string
	Env             string // dev / test / prod
	Version         string
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig 日志配置。
type LogConfig struct {
	Level    string
	Encoding string // json / console，空值跟随环境
}

// DataConfig 本地数据目录配置。
type DataConfig struct {
	Dir string
}

// AIConfig 推荐/聊天助手配置。
type AIConfig struct {
	Enabled         bool
	APIKey          string
	Model           string
	MinQueryLength  int           // 触发推荐的最小查询长度
	DebounceDelay   time.Duration // 查询防抖间隔
	FallbackMessage string        // 聊天失败时的兜底回复
}

// CacheConfig 缓存配置。
type CacheConfig struct {
	Enabled bool
	Type    string // redis / memory
	TTL     time.Duration
}

// RedisConfig Redis 连接配置。
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RateLimitConfig 助手接口限流配置。
type RateLimitConfig struct {
	Enabled bool
	Rate    int64
	Window  time.Duration
	Burst   int64
}

// CORSConfig 跨域配置。
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Config 应用完整配置。
type Config struct {
	App       AppConfig
	Log       LogConfig
	Data      DataConfig
	AI        AIConfig
	Cache     CacheConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// Load 从环境变量加载配置；存在 .env 文件时先行加载（忽略缺失）。
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "onos-store"),
			Env:             getEnv("APP_ENV", "dev"),
			Version:         getEnv("APP_VERSION", "0.1.0"),
			Port:            getEnvInt("APP_PORT", 8080),
			RequestTimeout:  getEnvDuration("APP_REQUEST_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", ""),
		},
		Data: DataConfig{
			Dir: getEnv("DATA_DIR", "./data"),
		},
		AI: AIConfig{
			Enabled:        getEnvBool("AI_ENABLED", true),
			APIKey:         getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
			Model:          getEnv("AI_MODEL", "gemini-3-flash-preview"),
			MinQueryLength: getEnvInt("AI_MIN_QUERY_LENGTH", 3),
			DebounceDelay:  getEnvDuration("AI_DEBOUNCE_DELAY", time.Second),
			FallbackMessage: getEnv("AI_FALLBACK_MESSAGE",
				"I'm sorry, I'm having trouble connecting right now."),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", true),
			Type:    getEnv("CACHE_TYPE", "memory"),
			TTL:     getEnvDuration("CACHE_TTL", 10*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", true),
			Rate:    getEnvInt64("RATE_LIMIT_RATE", 30),
			Window:  getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
			Burst:   getEnvInt64("RATE_LIMIT_BURST", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Request-ID"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate 做启动期的基本校验，避免把明显错误带入运行期。
func (c *Config) validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid APP_PORT: %d", c.App.Port)
	}
	if c.App.RequestTimeout <= 0 {
		return fmt.Errorf("invalid APP_REQUEST_TIMEOUT: %s", c.App.RequestTimeout)
	}
	if c.AI.MinQueryLength < 1 {
		return fmt.Errorf("invalid AI_MIN_QUERY_LENGTH: %d", c.AI.MinQueryLength)
	}
	if c.Cache.Enabled && c.Cache.Type != "memory" && c.Cache.Type != "redis" {
		return fmt.Errorf("invalid CACHE_TYPE: %s", c.Cache.Type)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
