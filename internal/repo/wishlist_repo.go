// Package repo 心愿单仓储实现。
package repo

import (
	"sync"

	"github.com/MorseWayne/onos_store/internal/domain"
)

// WishlistRepository 定义心愿单集合接口。
// 以商品ID为键的集合（物化为商品快照），无数量概念，展示顺序为插入顺序。
type WishlistRepository interface {
	// Toggle 切换商品：已存在则移除并返回 false，否则加入快照并返回 true
	Toggle(product *domain.Product) bool

	// Remove 无条件删除；ID 不存在时无操作
	Remove(id string)

	// Contains 判断商品是否在心愿单中
	Contains(id string) bool

	// Items 返回按插入顺序排列的商品快照
	Items() []*domain.Product

	// Replace 整体替换（启动恢复语义），不触发变更通知
	Replace(products []*domain.Product)

	// Subscribe 注册变更监听器，在每次变更提交后调用
	Subscribe(fn func())
}

type wishlistRepository struct {
	mu        sync.RWMutex
	items     []*domain.Product
	index     map[string]int
	listeners []func()
}

// NewWishlistRepository 创建空心愿单实例。
func NewWishlistRepository() WishlistRepository {
	return &wishlistRepository{
		index: make(map[string]int),
	}
}

func (r *wishlistRepository) Toggle(product *domain.Product) bool {
	if product == nil {
		return false
	}

	r.mu.Lock()
	added := r.toggleLocked(product)
	r.mu.Unlock()

	r.notify()
	return added
}

func (r *wishlistRepository) toggleLocked(product *domain.Product) bool {
	if i, exists := r.index[product.ID]; exists {
		r.removeAtLocked(i, product.ID)
		return false
	}

	r.index[product.ID] = len(r.items)
	r.items = append(r.items, product.Clone())
	return true
}

func (r *wishlistRepository) Remove(id string) {
	r.mu.Lock()
	i, exists := r.index[id]
	if !exists {
		r.mu.Unlock()
		return
	}
	r.removeAtLocked(i, id)
	r.mu.Unlock()

	r.notify()
}

func (r *wishlistRepository) removeAtLocked(i int, id string) {
	r.items = append(r.items[:i], r.items[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.items); j++ {
		r.index[r.items[j].ID] = j
	}
}

func (r *wishlistRepository) Contains(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.index[id]
	return exists
}

func (r *wishlistRepository) Items() []*domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Product, len(r.items))
	for i, p := range r.items {
		result[i] = p.Clone()
	}
	return result
}

func (r *wishlistRepository) Replace(products []*domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = r.items[:0]
	r.index = make(map[string]int, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, exists := r.index[p.ID]; exists {
			continue
		}
		r.index[p.ID] = len(r.items)
		r.items = append(r.items, p.Clone())
	}
}

func (r *wishlistRepository) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

func (r *wishlistRepository) notify() {
	r.mu.RLock()
	listeners := make([]func(), len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
