package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 3})
	defer rl.Stop()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("fourth request should be throttled")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("other clients have their own bucket")
	}

	now = now.Add(20 * time.Second)
	if !rl.Allow("1.2.3.4") {
		t.Fatal("a token should be refilled after 20s")
	}

	if got := rl.GetMetrics(); got.Rejected != 1 || got.ClientCount != 2 {
		t.Errorf("GetMetrics() = %+v", got)
	}
}

func TestLimiter_CleanupStaleEntries(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 10})
	defer rl.Stop()
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(11 * time.Minute)
	rl.Allow("new")

	rl.cleanupStaleEntries()

	if rl.ActiveClients() != 1 {
		t.Errorf("ActiveClients() = %d, want 1", rl.ActiveClients())
	}
}

func TestLimiter_Middleware(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 1})
	defer rl.Stop()

	handler := rl.Middleware(func(*http.Request) string { return "client" }, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	do := func(method string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(method, "/transactions", nil))
		return rec
	}

	if rec := do(http.MethodPost); rec.Code != http.StatusOK {
		t.Fatalf("first POST = %d, want 200", rec.Code)
	}
	rec := do(http.MethodPost)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
	}
	if rec := do(http.MethodGet); rec.Code != http.StatusOK {
		t.Errorf("GET should not be limited, got %d", rec.Code)
	}
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewLimiter(DefaultConfig())
	rl.Stop()
	rl.Stop()
}
