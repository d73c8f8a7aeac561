// Package repo 购物车台账仓储实现。
package repo

import (
	"sync"

	"github.com/MorseWayne/onos_store/internal/domain"
)

// CartRepository 定义购物车台账接口。
// 以商品ID为键，每个ID至多一个条目；所有操作对当前状态都是全函数，
// 对不存在的ID执行 Adjust/Remove 是静默无操作，不是错误。
type CartRepository interface {
	// Add 合并或插入条目：已存在则数量+1，否则以数量1插入
	Add(product *domain.Product)

	// Adjust 按增量调整数量，下限钳制为 1；ID 不存在时无操作
	Adjust(id string, delta int)

	// Remove 无条件删除条目（无论数量）；ID 不存在时无操作
	Remove(id string)

	// Items 返回按插入顺序排列的条目快照
	Items() []*domain.CartItem

	// Total 返回 Σ price × quantity
	Total() float64

	// Count 返回 Σ quantity（角标数），区别于条目数
	Count() int
}

// cartRepository 基于内存的购物车实现，切片保持插入顺序，映射提供ID定位。
type cartRepository struct {
	mu    sync.RWMutex
	items []*domain.CartItem
	index map[string]int
}

// NewCartRepository 创建空购物车实例。
func NewCartRepository() CartRepository {
	return &cartRepository{
		index: make(map[string]int),
	}
}

func (r *cartRepository) Add(product *domain.Product) {
	if product == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, exists := r.index[product.ID]; exists {
		r.items[i].Quantity++
		return
	}

	r.index[product.ID] = len(r.items)
	r.items = append(r.items, &domain.CartItem{
		Product:  product.Clone(),
		Quantity: 1,
	})
}

func (r *cartRepository) Adjust(id string, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return
	}

	q := r.items[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	r.items[i].Quantity = q
}

func (r *cartRepository) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return
	}

	r.items = append(r.items[:i], r.items[i+1:]...)
	delete(r.index, id)
	// 被删条目之后的下标整体前移
	for j := i; j < len(r.items); j++ {
		r.index[r.items[j].Product.ID] = j
	}
}

func (r *cartRepository) Items() []*domain.CartItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.CartItem, len(r.items))
	for i, item := range r.items {
		result[i] = &domain.CartItem{
			Product:  item.Product.Clone(),
			Quantity: item.Quantity,
		}
	}
	return result
}

func (r *cartRepository) Total() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	for _, item := range r.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

func (r *cartRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int
	for _, item := range r.items {
		count += item.Quantity
	}
	return count
}
