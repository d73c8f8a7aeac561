// Package store 提供基于 JSON 文件的本地持久化。
// 目录与心愿单各自独立持久化为一个完整文件：启动时读取一次，
// 每次变更后整体重写（临时文件 + 原子重命名）。
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/domain"
)

// 持久化文件名沿用目录交换格式的约定。
const (
	CatalogFile  = "onos_catalog.json"
	WishlistFile = "onos_wishlist.json"
)

// Store 管理数据目录下的持久化文件。
type Store struct {
	dir    string
	logger *zap.Logger
}

// New 创建持久化存储实例，确保数据目录存在。
func New(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// LoadCatalog 读取持久化的目录快照。
// 文件不存在返回 (nil, nil)，由调用方回退到默认目录；解析失败返回错误。
func (s *Store) LoadCatalog() ([]*domain.Product, error) {
	return s.loadProducts(CatalogFile)
}

// SaveCatalog 整体重写目录快照。
func (s *Store) SaveCatalog(products []*domain.Product) error {
	return s.saveProducts(CatalogFile, products)
}

// LoadWishlist 读取持久化的心愿单快照。
func (s *Store) LoadWishlist() ([]*domain.Product, error) {
	return s.loadProducts(WishlistFile)
}

// SaveWishlist 整体重写心愿单快照。
func (s *Store) SaveWishlist(products []*domain.Product) error {
	return s.saveProducts(WishlistFile, products)
}

func (s *Store) loadProducts(name string) ([]*domain.Product, error) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("malformed %s: %w", name, err)
	}
	return products, nil
}

// saveProducts 先写临时文件再重命名，避免崩溃留下半截文件。
func (s *Store) saveProducts(name string, products []*domain.Product) error {
	if products == nil {
		products = []*domain.Product{}
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// RestoreOrDefault 加载目录持久化状态；缺失或损坏时回退到给定默认值。
// 损坏的文件只记录日志，不中断启动。
func (s *Store) RestoreOrDefault(fallback []*domain.Product) []*domain.Product {
	products, err := s.LoadCatalog()
	if err != nil {
		s.logger.Warn("failed to restore catalog, using defaults", zap.Error(err))
		return fallback
	}
	if products == nil {
		return fallback
	}
	return products
}

// RestoreWishlist 加载心愿单持久化状态；缺失或损坏时返回空集合。
func (s *Store) RestoreWishlist() []*domain.Product {
	products, err := s.LoadWishlist()
	if err != nil {
		s.logger.Warn("failed to restore wishlist, starting empty", zap.Error(err))
		return nil
	}
	return products
}
