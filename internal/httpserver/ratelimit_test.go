package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiter_SweepDropsIdleClients(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	handler := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	hit("203.0.113.7:5555")
	clock = clock.Add(2 * time.Minute)
	hit("198.51.100.2:1234")

	if got := limiter.Len(); got != 2 {
		t.Fatalf("expected two tracked clients, got %d", got)
	}

	clock = clock.Add(90 * time.Second)
	if removed := limiter.Sweep(3 * time.Minute); removed != 1 {
		t.Fatalf("expected one idle client removed, got %d", removed)
	}
	if got := limiter.Len(); got != 1 {
		t.Fatalf("expected the recent client to stay, got %d", got)
	}

	if code := hit("198.51.100.2:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("kept client must keep its bucket, got %d", code)
	}
	if code := hit("203.0.113.7:5555"); code != http.StatusNoContent {
		t.Fatalf("swept client must start with a fresh bucket, got %d", code)
	}
}

func TestIPRateLimiter_RunStopsOnCancel(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		limiter.Run(ctx, time.Millisecond, time.Minute)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
