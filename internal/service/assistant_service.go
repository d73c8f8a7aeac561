// Package service 推荐/聊天助手编排实现。
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/ai"
	"github.com/MorseWayne/onos_store/internal/cache"
	"github.com/MorseWayne/onos_store/internal/domain"
	"github.com/MorseWayne/onos_store/internal/repo"
)

// RecommendedProduct 解析后的推荐条目：商品快照加推荐理由。
type RecommendedProduct struct {
	Product *domain.Product `json:"product"`
	Reason  string          `json:"reason"`
}

// RecommendationState 当前推荐视图。
type RecommendationState struct {
	Query           string                `json:"query"`
	Loading         bool                  `json:"loading"`
	Recommendations []*RecommendedProduct `json:"recommendations"`
}

// AssistantService 定义助手业务逻辑接口。
type AssistantService interface {
	// SetQuery 更新查询文本并调度防抖的推荐拉取。
	// 新查询会使任何在途请求的结果失效（last-writer-wins）。
	SetQuery(query string)

	// Recommendations 返回当前推荐状态快照
	Recommendations() *RecommendationState

	// Chat 同步聊天；任何故障都降级为固定兜底回复，不返回错误
	Chat(ctx context.Context, message string) string

	// Close 取消未触发的防抖任务
	Close()
}

// AssistantOptions 助手服务配置。
type AssistantOptions struct {
	MinQueryLength int           // 触发推荐的最小查询长度
	DebounceDelay  time.Duration // 查询停止变化后的等待间隔
	Fallback       string        // 聊天故障时的兜底回复
	FetchTimeout   time.Duration // 单次外部调用超时
	CacheTTL       time.Duration // 推荐结果缓存TTL
}

// assistantService 实现 AssistantService。
// 防抖 + 世代计数：每次 SetQuery 递增世代并重置定时器；
// 拉取完成时世代不匹配的结果被丢弃，杜绝过期响应覆盖新状态。
type assistantService struct {
	recommender ai.Recommender // 可为 nil（助手关闭）
	catalogRepo repo.CatalogRepository
	cache       cache.Cache
	logger      *zap.Logger
	opts        AssistantOptions

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	query      string
	loading    bool
	recs       []ai.Recommendation
}

// NewAssistantService 创建助手服务实例。
func NewAssistantService(recommender ai.Recommender, catalogRepo repo.CatalogRepository, c cache.Cache, logger *zap.Logger, opts AssistantOptions) AssistantService {
	if opts.MinQueryLength < 1 {
		opts.MinQueryLength = 3
	}
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = time.Second
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	if opts.Fallback == "" {
		opts.Fallback = "I'm sorry, I'm having trouble connecting right now."
	}
	return &assistantService{
		recommender: recommender,
		catalogRepo: catalogRepo,
		cache:       c,
		logger:      logger,
		opts:        opts,
	}
}

func (s *assistantService) SetQuery(query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	// 任何新输入都使旧世代失效
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.query = query

	// 低于阈值：清空推荐，不触发外部调用
	if len(query) < s.opts.MinQueryLength || s.recommender == nil {
		s.loading = false
		s.recs = nil
		return
	}

	gen := s.generation
	s.loading = true
	s.timer = time.AfterFunc(s.opts.DebounceDelay, func() {
		s.fetch(gen, query)
	})
}

// fetch 在防抖间隔结束后执行实际拉取。
func (s *assistantService) fetch(gen uint64, query string) {
	cacheKey := "assistant:recs:" + strings.ToLower(query)

	// 命中缓存则跳过外部调用
	if s.cache != nil {
		var cached []ai.Recommendation
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := s.cache.Get(ctx, cacheKey, &cached)
		cancel()
		if err == nil {
			s.apply(gen, cached)
			return
		}
	}

	summaries := s.catalogSummaries()

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.FetchTimeout)
	defer cancel()

	recs, err := s.recommender.Recommend(ctx, query, summaries)
	if err != nil {
		// 降级：推荐失败等价于空推荐，绝不向消费方抛错
		s.logger.Warn("recommendation fetch failed",
			zap.String("query", query), zap.Error(err))
		s.apply(gen, nil)
		return
	}

	if s.cache != nil && len(recs) > 0 {
		cctx, ccancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := s.cache.Set(cctx, cacheKey, recs, s.opts.CacheTTL); err != nil {
			s.logger.Debug("failed to cache recommendations", zap.Error(err))
		}
		ccancel()
	}

	s.apply(gen, recs)
}

// apply 在完成时比较世代：被更新查询取代的结果直接丢弃。
func (s *assistantService) apply(gen uint64, recs []ai.Recommendation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return
	}
	s.recs = recs
	s.loading = false
}

func (s *assistantService) Recommendations() *RecommendationState {
	s.mu.Lock()
	query := s.query
	loading := s.loading
	recs := make([]ai.Recommendation, len(s.recs))
	copy(recs, s.recs)
	s.mu.Unlock()

	state := &RecommendationState{
		Query:           query,
		Loading:         loading,
		Recommendations: make([]*RecommendedProduct, 0, len(recs)),
	}

	// 将推荐的商品ID解析为目录快照；目录中已不存在的ID跳过
	for _, rec := range recs {
		product, err := s.catalogRepo.GetByID(rec.ProductID)
		if err != nil || product == nil {
			continue
		}
		state.Recommendations = append(state.Recommendations, &RecommendedProduct{
			Product: product,
			Reason:  rec.Reason,
		})
	}
	return state
}

func (s *assistantService) Chat(ctx context.Context, message string) string {
	if s.recommender == nil || strings.TrimSpace(message) == "" {
		return s.opts.Fallback
	}

	reply, err := s.recommender.Chat(ctx, message, s.chatContext())
	if err != nil {
		s.logger.Warn("assistant chat failed", zap.Error(err))
		return s.opts.Fallback
	}
	return reply
}

func (s *assistantService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *assistantService) catalogSummaries() []ai.ProductSummary {
	catalog := s.catalogRepo.List()
	summaries := make([]ai.ProductSummary, 0, len(catalog))
	for _, p := range catalog {
		summaries = append(summaries, ai.ProductSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
		})
	}
	return summaries
}

// chatContext 构造聊天上下文：目录中的商品名称列表。
func (s *assistantService) chatContext() string {
	catalog := s.catalogRepo.List()
	names := make([]string, 0, len(catalog))
	for _, p := range catalog {
		names = append(names, p.Name)
	}
	return "We have products like: " + strings.Join(names, ", ") + "."
}
