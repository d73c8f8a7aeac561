package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/onos_store/internal/ai"
)

func newTestAssistant(rec ai.Recommender, debounce time.Duration) (AssistantService, *mockCatalogRepository) {
	catalogRepo := newMockCatalogRepository(testCatalog()...)
	service := NewAssistantService(rec, catalogRepo, nil, zap.NewNop(), AssistantOptions{
		MinQueryLength: 3,
		DebounceDelay:  debounce,
	})
	return service, catalogRepo
}

func TestAssistantService_ShortQueryClearsWithoutFetch(t *testing.T) {
	rec := newMockRecommender()
	rec.recs["ph"] = []ai.Recommendation{{ProductID: "p1", Reason: "match"}}
	service, _ := newTestAssistant(rec, 10*time.Millisecond)
	defer service.Close()

	service.SetQuery("ph")

	state := service.Recommendations()
	if state.Loading {
		t.Errorf("short query must not enter loading state")
	}
	if len(state.Recommendations) != 0 {
		t.Errorf("short query must clear recommendations, got %d", len(state.Recommendations))
	}

	time.Sleep(50 * time.Millisecond)
	if rec.callCount() != 0 {
		t.Errorf("short query must not reach the recommender, got %d calls", rec.callCount())
	}
}

func TestAssistantService_DebouncedFetch(t *testing.T) {
	rec := newMockRecommender()
	rec.recs["galaxy phone"] = []ai.Recommendation{{ProductID: "p1", Reason: "flagship match"}}
	service, _ := newTestAssistant(rec, 20*time.Millisecond)
	defer service.Close()

	service.SetQuery("galaxy phone")

	if state := service.Recommendations(); !state.Loading {
		t.Errorf("query above threshold must enter loading state immediately")
	}

	time.Sleep(150 * time.Millisecond)

	state := service.Recommendations()
	if state.Loading {
		t.Errorf("loading must clear after fetch completes")
	}
	if len(state.Recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(state.Recommendations))
	}
	if state.Recommendations[0].Product.ID != "p1" {
		t.Errorf("recommendation product = %s, want p1", state.Recommendations[0].Product.ID)
	}
	if state.Recommendations[0].Reason != "flagship match" {
		t.Errorf("recommendation reason = %q", state.Recommendations[0].Reason)
	}
}

func TestAssistantService_LastWriterWins(t *testing.T) {
	rec := newMockRecommender()
	rec.recs["galaxy"] = []ai.Recommendation{{ProductID: "p1", Reason: "old"}}
	rec.recs["macbook"] = []ai.Recommendation{{ProductID: "p2", Reason: "new"}}
	service, _ := newTestAssistant(rec, 50*time.Millisecond)
	defer service.Close()

	// 第二次输入在防抖窗口内到达，第一次查询不应触发外部调用
	service.SetQuery("galaxy")
	time.Sleep(10 * time.Millisecond)
	service.SetQuery("macbook")

	time.Sleep(200 * time.Millisecond)

	if rec.callCount() != 1 {
		t.Fatalf("expected exactly 1 recommender call, got %d", rec.callCount())
	}
	if rec.lastCall() != "macbook" {
		t.Errorf("fetched query = %q, want macbook", rec.lastCall())
	}

	state := service.Recommendations()
	if len(state.Recommendations) != 1 || state.Recommendations[0].Product.ID != "p2" {
		t.Errorf("state must reflect the latest query, got %+v", state.Recommendations)
	}
}

func TestAssistantService_FetchFailureDegradesToEmpty(t *testing.T) {
	rec := newMockRecommender()
	rec.err = errors.New("quota exhausted")
	service, _ := newTestAssistant(rec, 10*time.Millisecond)
	defer service.Close()

	service.SetQuery("galaxy phone")
	time.Sleep(100 * time.Millisecond)

	state := service.Recommendations()
	if state.Loading {
		t.Errorf("loading must clear after a failed fetch")
	}
	if len(state.Recommendations) != 0 {
		t.Errorf("failed fetch must yield empty recommendations, got %d", len(state.Recommendations))
	}
}

func TestAssistantService_UnknownRecommendedIDsSkipped(t *testing.T) {
	rec := newMockRecommender()
	rec.recs["galaxy"] = []ai.Recommendation{
		{ProductID: "ghost", Reason: "stale"},
		{ProductID: "p4", Reason: "still in catalog"},
	}
	service, _ := newTestAssistant(rec, 10*time.Millisecond)
	defer service.Close()

	service.SetQuery("galaxy")
	time.Sleep(100 * time.Millisecond)

	state := service.Recommendations()
	if len(state.Recommendations) != 1 {
		t.Fatalf("expected 1 resolvable recommendation, got %d", len(state.Recommendations))
	}
	if state.Recommendations[0].Product.ID != "p4" {
		t.Errorf("resolved product = %s, want p4", state.Recommendations[0].Product.ID)
	}
}

func TestAssistantService_CloseCancelsPendingFetch(t *testing.T) {
	rec := newMockRecommender()
	rec.recs["galaxy"] = []ai.Recommendation{{ProductID: "p1", Reason: "match"}}
	service, _ := newTestAssistant(rec, 30*time.Millisecond)

	service.SetQuery("galaxy")
	service.Close()

	time.Sleep(100 * time.Millisecond)
	if rec.callCount() != 0 {
		t.Errorf("pending fetch must be canceled on close, got %d calls", rec.callCount())
	}
}

func TestAssistantService_Chat(t *testing.T) {
	rec := newMockRecommender()
	rec.chatMsg = "The Galaxy S25 Ultra is our best phone."
	service, _ := newTestAssistant(rec, 10*time.Millisecond)
	defer service.Close()

	if got := service.Chat(context.Background(), "best phone?"); got != rec.chatMsg {
		t.Errorf("Chat() = %q, want %q", got, rec.chatMsg)
	}
}

func TestAssistantService_ChatFallsBackOnFailure(t *testing.T) {
	fallback := "I'm sorry, I'm having trouble connecting right now."

	// 外部调用失败
	rec := newMockRecommender()
	rec.chatErr = errors.New("connection reset")
	service, _ := newTestAssistant(rec, 10*time.Millisecond)
	defer service.Close()

	if got := service.Chat(context.Background(), "hello"); got != fallback {
		t.Errorf("Chat() on failure = %q, want fallback", got)
	}

	// 助手未配置（nil recommender）
	disabled, _ := newTestAssistant(nil, 10*time.Millisecond)
	defer disabled.Close()

	if got := disabled.Chat(context.Background(), "hello"); got != fallback {
		t.Errorf("Chat() with nil recommender = %q, want fallback", got)
	}
}
