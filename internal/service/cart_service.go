// Package service 购物车业务逻辑实现。
package service

import (
	"errors"
	"fmt"

	"github.com/MorseWayne/onos_store/internal/domain"
	"github.com/MorseWayne/onos_store/internal/repo"
)

// CartService 定义购物车业务逻辑接口。
type CartService interface {
	// Add 将商品加入购物车（合并或插入）；返回加入后的购物车视图
	Add(productID string) (*domain.CartSummary, error)

	// Adjust 按增量调整条目数量，下限为 1；ID 不存在时为静默无操作
	Adjust(productID string, delta int) *domain.CartSummary

	// Remove 删除条目；ID 不存在时为静默无操作
	Remove(productID string) *domain.CartSummary

	// Summary 返回当前购物车视图
	Summary() *domain.CartSummary
}

// cartService 实现 CartService 接口。
// 商品快照在加入时从目录取得；台账自身不回读目录。
type cartService struct {
	cartRepo    repo.CartRepository
	catalogRepo repo.CatalogRepository
}

// NewCartService 创建购物车服务实例。
func NewCartService(cartRepo repo.CartRepository, catalogRepo repo.CatalogRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
	}
}

// Add 加入购物车。商品不存在时返回错误（无法构造快照）。
func (s *cartService) Add(productID string) (*domain.CartSummary, error) {
	product, err := s.catalogRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, errors.New("product not found")
	}

	s.cartRepo.Add(product)
	return s.Summary(), nil
}

func (s *cartService) Adjust(productID string, delta int) *domain.CartSummary {
	s.cartRepo.Adjust(productID, delta)
	return s.Summary()
}

func (s *cartService) Remove(productID string) *domain.CartSummary {
	s.cartRepo.Remove(productID)
	return s.Summary()
}

func (s *cartService) Summary() *domain.CartSummary {
	return &domain.CartSummary{
		Items: s.cartRepo.Items(),
		Total: s.cartRepo.Total(),
		Count: s.cartRepo.Count(),
	}
}
