// Package service 实现业务逻辑层，协调各种资源完成业务需求。
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MorseWayne/onos_store/internal/domain"
	"github.com/MorseWayne/onos_store/internal/repo"
)

// CatalogService 定义商品目录业务逻辑接口。
type CatalogService interface {
	// 目录查询
	ListProducts(filter *domain.ProductFilter) []*domain.Product
	GetProduct(id string) (*domain.Product, error)
	Categories() []*domain.Category
	Brands() []string

	// 评价
	SubmitReview(productID string, req *domain.SubmitReviewRequest) (*domain.Product, error)

	// 导入导出
	ExportCatalog() ([]byte, error)
	ImportCatalog(data []byte) (int, error)
}

// catalogService 实现 CatalogService 接口。
type catalogService struct {
	catalogRepo repo.CatalogRepository
	categories  []*domain.Category
	now         func() time.Time // 测试可替换的时钟
}

// NewCatalogService 创建目录服务实例。
func NewCatalogService(catalogRepo repo.CatalogRepository) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		categories:  repo.DefaultCategories(),
		now:         time.Now,
	}
}

// FilterProducts 纯过滤函数：按固定顺序施加合取谓词，保持目录顺序，无副作用。
// 谓词顺序：分类 → 关键词 → 品牌集合 → 价格区间 → 最低评分。
func FilterProducts(catalog []*domain.Product, f *domain.ProductFilter) []*domain.Product {
	result := catalog

	// 1) 分类：大小写敏感的精确标签匹配
	if f.Category != "" && f.Category != "all" {
		result = keep(result, func(p *domain.Product) bool {
			return p.Category == f.Category
		})
	}

	// 2) 关键词：小写化后匹配名称或描述的子串
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		result = keep(result, func(p *domain.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q)
		})
	}

	// 3) 品牌集合：非空时要求成员关系
	if len(f.Brands) > 0 {
		brands := make(map[string]struct{}, len(f.Brands))
		for _, b := range f.Brands {
			brands[b] = struct{}{}
		}
		result = keep(result, func(p *domain.Product) bool {
			_, ok := brands[p.Brand]
			return ok
		})
	}

	// 4) 价格区间：恒定施加，闭区间；min > max 时自然匹配为空
	priceMax := f.PriceMax
	if priceMax <= 0 {
		priceMax = domain.UnboundedPrice
	}
	result = keep(result, func(p *domain.Product) bool {
		return p.Price >= f.PriceMin && p.Price <= priceMax
	})

	// 5) 最低评分
	if f.MinRating > 0 {
		result = keep(result, func(p *domain.Product) bool {
			return p.Rating >= f.MinRating
		})
	}

	return result
}

// keep 稳定过滤：保留满足谓词的元素，保持相对顺序。
func keep(products []*domain.Product, pred func(*domain.Product) bool) []*domain.Product {
	result := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			result = append(result, p)
		}
	}
	return result
}

// ListProducts 获取过滤后的目录视图。
func (s *catalogService) ListProducts(filter *domain.ProductFilter) []*domain.Product {
	catalog := s.catalogRepo.List()
	if filter == nil {
		return catalog
	}
	return FilterProducts(catalog, filter)
}

// GetProduct 获取商品详情。
func (s *catalogService) GetProduct(id string) (*domain.Product, error) {
	product, err := s.catalogRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.New("product not found")
	}
	return product, nil
}

// Categories 返回静态分类参考列表。
func (s *catalogService) Categories() []*domain.Category {
	return s.categories
}

// Brands 返回目录中出现过的品牌。
func (s *catalogService) Brands() []string {
	return s.catalogRepo.Brands()
}

// SubmitReview 提交评价：校验 → 追加 → 重算派生字段 → 写回。
// 校验失败时不发生任何状态变更；成功时返回更新后的商品，
// 调用方据此刷新手头的详情快照。
func (s *catalogService) SubmitReview(productID string, req *domain.SubmitReviewRequest) (*domain.Product, error) {
	if req == nil {
		return nil, errors.New("review request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.catalogRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.New("product not found")
	}

	review := domain.Review{
		ID:           uuid.New().String(),
		ReviewerName: strings.TrimSpace(req.ReviewerName),
		Rating:       req.Rating,
		Comment:      strings.TrimSpace(req.Comment),
		Date:         s.now().Format("2006-01-02"),
	}

	product.Reviews = append(product.Reviews, review)
	product.ReviewCount = len(product.Reviews)
	product.Rating = meanRating(product.Reviews)

	if err := s.catalogRepo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return product, nil
}

// meanRating 返回评价序列的算术平均分，保留一位小数。
// 空序列不触发重算（调用方保证追加后非空）。
func meanRating(reviews []domain.Review) float64 {
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

// ExportCatalog 序列化完整目录为可下载的 JSON 文档。
func (s *catalogService) ExportCatalog() ([]byte, error) {
	data, err := json.MarshalIndent(s.catalogRepo.List(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export catalog: %w", err)
	}
	return data, nil
}

// ImportCatalog 整体替换目录。
// 载荷必须是商品数组；非数组输入被拒绝且不发生状态变更。
// 返回导入的商品条数。
func (s *catalogService) ImportCatalog(data []byte) (int, error) {
	var products []*domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return 0, errors.New("invalid catalog format: expected a JSON array of products")
	}

	for i, p := range products {
		if p == nil || p.ID == "" {
			return 0, fmt.Errorf("invalid catalog format: product at index %d has no id", i)
		}
	}

	if err := s.catalogRepo.Replace(products); err != nil {
		return 0, fmt.Errorf("failed to replace catalog: %w", err)
	}
	return len(products), nil
}
