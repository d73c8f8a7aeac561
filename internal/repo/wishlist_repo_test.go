package repo

import (
	"testing"

	"github.com/MorseWayne/onos_store/internal/domain"
)

func TestWishlistRepository_ToggleInvolution(t *testing.T) {
	r := NewWishlistRepository()
	p := repoProduct("p1", "First", "A", 10)

	if added := r.Toggle(p); !added {
		t.Errorf("first Toggle() = false, want true")
	}
	if !r.Contains("p1") {
		t.Errorf("Contains() = false after add")
	}

	if added := r.Toggle(p); added {
		t.Errorf("second Toggle() = true, want false")
	}
	if r.Contains("p1") || len(r.Items()) != 0 {
		t.Errorf("double toggle must restore the empty set")
	}
}

func TestWishlistRepository_NotifiesOnChange(t *testing.T) {
	r := NewWishlistRepository()

	notified := 0
	r.Subscribe(func() { notified++ })

	r.Toggle(repoProduct("p1", "First", "A", 10))
	r.Remove("p1")
	if notified != 2 {
		t.Errorf("expected 2 change notifications, got %d", notified)
	}

	// 未知ID删除不通知
	r.Remove("missing")
	if notified != 2 {
		t.Errorf("no-op remove must not notify, got %d", notified)
	}
}

func TestWishlistRepository_ReplaceIsSilent(t *testing.T) {
	r := NewWishlistRepository()

	notified := 0
	r.Subscribe(func() { notified++ })

	// 启动恢复用的 Replace 不触发通知，避免恢复立刻回写文件
	r.Replace([]*domain.Product{
		repoProduct("p1", "First", "A", 10),
		repoProduct("p2", "Second", "B", 20),
		repoProduct("p1", "Duplicate", "A", 10),
	})

	if notified != 0 {
		t.Errorf("Replace() must not notify, got %d notifications", notified)
	}

	items := r.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].ID != "p1" || items[1].ID != "p2" {
		t.Errorf("Replace() must keep first-occurrence order, got %s, %s", items[0].ID, items[1].ID)
	}
}
