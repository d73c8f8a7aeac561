package service

import (
	"context"
	"errors"
	"sync"

	"github.com/MorseWayne/onos_store/internal/ai"
	"github.com/MorseWayne/onos_store/internal/domain"
)

// Mock CatalogRepository for testing
type mockCatalogRepository struct {
	mu       sync.Mutex
	products []*domain.Product
	index    map[string]int
	updated  int // Update 调用次数
}

func newMockCatalogRepository(initial ...*domain.Product) *mockCatalogRepository {
	m := &mockCatalogRepository{index: make(map[string]int)}
	for _, p := range initial {
		m.index[p.ID] = len(m.products)
		m.products = append(m.products, p.Clone())
	}
	return m
}

func (m *mockCatalogRepository) List() []*domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Product, len(m.products))
	for i, p := range m.products {
		result[i] = p.Clone()
	}
	return result
}

func (m *mockCatalogRepository) GetByID(id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, exists := m.index[id]
	if !exists {
		return nil, nil
	}
	return m.products[i].Clone(), nil
}

func (m *mockCatalogRepository) Replace(products []*domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = nil
	m.index = make(map[string]int)
	for _, p := range products {
		m.index[p.ID] = len(m.products)
		m.products = append(m.products, p.Clone())
	}
	return nil
}

func (m *mockCatalogRepository) Update(product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, exists := m.index[product.ID]
	if !exists {
		return errors.New("product not found")
	}
	m.products[i] = product.Clone()
	m.updated++
	return nil
}

func (m *mockCatalogRepository) Brands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]struct{})
	var brands []string
	for _, p := range m.products {
		if _, ok := seen[p.Brand]; ok || p.Brand == "" {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	return brands
}

func (m *mockCatalogRepository) Subscribe(fn func()) {}

// Mock Recommender for testing
type mockRecommender struct {
	mu      sync.Mutex
	recs    map[string][]ai.Recommendation // query -> recommendations
	err     error
	chatMsg string
	chatErr error
	calls   []string // Recommend 收到的查询序列
}

func newMockRecommender() *mockRecommender {
	return &mockRecommender{recs: make(map[string][]ai.Recommendation)}
}

func (m *mockRecommender) Recommend(ctx context.Context, query string, products []ai.ProductSummary) ([]ai.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.recs[query], nil
}

func (m *mockRecommender) Chat(ctx context.Context, message, chatContext string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.chatMsg, nil
}

func (m *mockRecommender) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockRecommender) lastCall() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return ""
	}
	return m.calls[len(m.calls)-1]
}

// testProduct 构造测试商品。
func testProduct(id, name, brand, category string, price, rating float64) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        name,
		Brand:       brand,
		Price:       price,
		Category:    category,
		Rating:      rating,
		Description: "Description of " + name,
	}
}
