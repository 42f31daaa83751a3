package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter_GetLimiter_ReusesBucket(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)

	first := limiter.GetLimiter("10.0.0.1")
	second := limiter.GetLimiter("10.0.0.1")
	other := limiter.GetLimiter("10.0.0.2")

	if first != second {
		t.Fatal("expected the same bucket for repeated lookups")
	}
	if first == other {
		t.Fatal("expected distinct buckets per address")
	}
}

func TestRateLimitMiddleware_RejectsAfterBurst(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0.001), 2)
	middleware := RateLimitMiddleware(limiter, NewMockHandlerLogger())

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/extract", nil)
		req.RemoteAddr = "10.0.0.1:51234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected request %d to pass, got %d", i+1, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/extract", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rr.Code)
	}
}

func TestRateLimitMiddleware_IsolatesClients(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0.001), 1)
	middleware := RateLimitMiddleware(limiter, NewMockHandlerLogger())

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodGet, "/api/v1/extract", nil)
	first.RemoteAddr = "10.0.0.1:51234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, first)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected first client to pass, got %d", rr.Code)
	}

	exhausted := httptest.NewRequest(http.MethodGet, "/api/v1/extract", nil)
	exhausted.RemoteAddr = "10.0.0.1:51234"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, exhausted)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected first client to be limited, got %d", rr.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/api/v1/extract", nil)
	second.RemoteAddr = "10.0.0.2:51234"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, second)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected second client to pass, got %d", rr.Code)
	}
}
