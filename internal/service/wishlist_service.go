// Package service 心愿单业务逻辑实现。
package service

import (
	"errors"
	"fmt"

	"github.com/MorseWayne/onos_store/internal/domain"
	"github.com/MorseWayne/onos_store/internal/repo"
)

// WishlistService 定义心愿单业务逻辑接口。
type WishlistService interface {
	// Toggle 切换商品：已存在则移除，否则加入快照；返回是否加入
	Toggle(productID string) (added bool, err error)

	// Remove 无条件删除；ID 不存在时为静默无操作
	Remove(productID string)

	// Items 返回按插入顺序排列的商品快照
	Items() []*domain.Product
}

type wishlistService struct {
	wishlistRepo repo.WishlistRepository
	catalogRepo  repo.CatalogRepository
}

// NewWishlistService 创建心愿单服务实例。
func NewWishlistService(wishlistRepo repo.WishlistRepository, catalogRepo repo.CatalogRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		catalogRepo:  catalogRepo,
	}
}

// Toggle 切换商品的心愿单状态。
// 移除路径不需要目录命中（心愿单里可能留有已下架商品的快照）。
func (s *wishlistService) Toggle(productID string) (bool, error) {
	if s.wishlistRepo.Contains(productID) {
		s.wishlistRepo.Remove(productID)
		return false, nil
	}

	product, err := s.catalogRepo.GetByID(productID)
	if err != nil {
		return false, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return false, errors.New("product not found")
	}

	return s.wishlistRepo.Toggle(product), nil
}

func (s *wishlistService) Remove(productID string) {
	s.wishlistRepo.Remove(productID)
}

func (s *wishlistService) Items() []*domain.Product {
	return s.wishlistRepo.Items()
}
