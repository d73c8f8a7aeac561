package repo

import (
	"testing"
)

func TestCartRepository_AddMergesAndKeepsOrder(t *testing.T) {
	r := NewCartRepository()

	r.Add(repoProduct("p1", "First", "A", 10))
	r.Add(repoProduct("p2", "Second", "B", 20))
	r.Add(repoProduct("p1", "First", "A", 10))

	items := r.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
	if items[0].Product.ID != "p1" || items[1].Product.ID != "p2" {
		t.Errorf("line items must keep insertion order, got %s, %s", items[0].Product.ID, items[1].Product.ID)
	}
	if items[0].Quantity != 2 || items[1].Quantity != 1 {
		t.Errorf("quantities = %d, %d; want 2, 1", items[0].Quantity, items[1].Quantity)
	}
}

func TestCartRepository_AdjustFloor(t *testing.T) {
	r := NewCartRepository()
	r.Add(repoProduct("p1", "First", "A", 10))

	r.Adjust("p1", 4)
	if got := r.Items()[0].Quantity; got != 5 {
		t.Errorf("quantity after +4 = %d, want 5", got)
	}

	r.Adjust("p1", -99)
	if got := r.Items()[0].Quantity; got != 1 {
		t.Errorf("quantity must floor at 1, got %d", got)
	}

	// 未知ID调整为静默无操作
	r.Adjust("missing", 1)
	if got := len(r.Items()); got != 1 {
		t.Errorf("adjust on unknown ID must be a no-op, got %d items", got)
	}
}

func TestCartRepository_RemoveReindexes(t *testing.T) {
	r := NewCartRepository()
	r.Add(repoProduct("p1", "First", "A", 10))
	r.Add(repoProduct("p2", "Second", "B", 20))
	r.Add(repoProduct("p3", "Third", "C", 30))

	r.Remove("p2")

	items := r.Items()
	if len(items) != 2 || items[0].Product.ID != "p1" || items[1].Product.ID != "p3" {
		t.Fatalf("unexpected items after remove: %+v", items)
	}

	// 删除后下标映射必须仍然指向正确条目
	r.Adjust("p3", 2)
	if got := r.Items()[1].Quantity; got != 3 {
		t.Errorf("adjust after remove hit the wrong item, quantity = %d, want 3", got)
	}

	r.Remove("missing") // 无操作
	if got := len(r.Items()); got != 2 {
		t.Errorf("remove on unknown ID must be a no-op, got %d items", got)
	}
}

func TestCartRepository_TotalAndCount(t *testing.T) {
	r := NewCartRepository()
	r.Add(repoProduct("p1", "First", "A", 10.50))
	r.Add(repoProduct("p1", "First", "A", 10.50))
	r.Add(repoProduct("p2", "Second", "B", 5.25))

	if got, want := r.Total(), 2*10.50+5.25; got != want {
		t.Errorf("Total() = %v, want %v", got, want)
	}
	if got := r.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3 (sum of quantities, not line items)", got)
	}
}
