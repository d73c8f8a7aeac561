// Package repo 实现数据访问层，提供内存仓储与变更通知。
package repo

import (
	"errors"
	"sync"

	"github.com/MorseWayne/onos_store/internal/domain"
)

// CatalogRepository 定义商品目录仓储接口。
// 读操作返回快照；写操作为整条目替换，写入后触发变更通知。
type CatalogRepository interface {
	// List 返回目录的有序快照
	List() []*domain.Product

	// GetByID 按ID获取商品快照；不存在时返回 (nil, nil)
	GetByID(id string) (*domain.Product, error)

	// Replace 整体替换目录（导入语义）
	Replace(products []*domain.Product) error

	// Update 替换单个商品条目（评价追加后的写回）
	Update(product *domain.Product) error

	// Brands 返回目录中出现过的品牌（按首次出现顺序去重）
	Brands() []string

	// Subscribe 注册变更监听器，在每次变更提交后调用
	Subscribe(fn func())
}

// catalogRepository 基于内存的目录仓储实现。
// 快照读 + 整条目写，保证并发读取不会观察到部分更新。
type catalogRepository struct {
	mu        sync.RWMutex
	products  []*domain.Product
	index     map[string]int // id -> products 下标
	listeners []func()
}

// NewCatalogRepository 创建目录仓储实例，以给定商品列表初始化。
func NewCatalogRepository(initial []*domain.Product) CatalogRepository {
	r := &catalogRepository{}
	r.reset(initial)
	return r
}

// reset 重建内部存储；调用方需持有写锁或处于构造期。
func (r *catalogRepository) reset(products []*domain.Product) {
	r.products = make([]*domain.Product, 0, len(products))
	r.index = make(map[string]int, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, exists := r.index[p.ID]; exists {
			// 同ID后出现者覆盖先出现者，保持目录的唯一性约束
			r.products[r.index[p.ID]] = p.Clone()
			continue
		}
		r.index[p.ID] = len(r.products)
		r.products = append(r.products, p.Clone())
	}
}

func (r *catalogRepository) List() []*domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Product, len(r.products))
	for i, p := range r.products {
		result[i] = p.Clone()
	}
	return result
}

func (r *catalogRepository) GetByID(id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.index[id]
	if !exists {
		return nil, nil
	}
	return r.products[i].Clone(), nil
}

func (r *catalogRepository) Replace(products []*domain.Product) error {
	r.mu.Lock()
	r.reset(products)
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *catalogRepository) Update(product *domain.Product) error {
	if product == nil {
		return errors.New("product is nil")
	}

	r.mu.Lock()
	i, exists := r.index[product.ID]
	if !exists {
		r.mu.Unlock()
		return errors.New("product not found")
	}
	r.products[i] = product.Clone()
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *catalogRepository) Brands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.products))
	var brands []string
	for _, p := range r.products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	return brands
}

func (r *catalogRepository) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// notify 在锁外依次调用监听器，避免监听器回读仓储时死锁。
func (r *catalogRepository) notify() {
	r.mu.RLock()
	listeners := make([]func(), len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
