package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lftbrito/bip-teste-integrado/internal/adapter/http/middleware"
)

type fakeIdempotencyStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{data: make(map[string][]byte)}
}

func (s *fakeIdempotencyStore) CheckAndSet(_ context.Context, key string, response []byte, _ time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.data[key]; ok {
		return true, existing, nil
	}

	if response == nil {
		response = []byte("processing")
	}
	s.data[key] = response

	return false, nil, nil
}

func (s *fakeIdempotencyStore) Update(_ context.Context, key string, response []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = response

	return nil
}

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	store := newFakeIdempotencyStore()

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"result":"fresh"}`))
	})

	wrapped := middleware.NewIdempotencyMiddleware(store, time.Minute).Wrap(next)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader("{}"))
		req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		return rec
	}

	first := do()
	if first.Body.String() != `{"result":"fresh"}` {
		t.Fatalf("unexpected first response: %s", first.Body.String())
	}

	second := do()
	if second.Body.String() != `{"result":"fresh"}` {
		t.Errorf("unexpected replayed response: %s", second.Body.String())
	}
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Error("expected replay header")
	}

	if calls != 1 {
		t.Errorf("handler should run once, ran %d times", calls)
	}
}

func TestIdempotencyMiddleware_SkipsWithoutKey(t *testing.T) {
	store := newFakeIdempotencyStore()

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	wrapped := middleware.NewIdempotencyMiddleware(store, time.Minute).Wrap(next)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
	}

	if calls != 2 {
		t.Errorf("expected handler to run every time without a key, ran %d times", calls)
	}
}

func TestIdempotencyMiddleware_SkipsReadRequests(t *testing.T) {
	store := newFakeIdempotencyStore()

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	wrapped := middleware.NewIdempotencyMiddleware(store, time.Minute).Wrap(next)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/benefits", nil)
		req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
	}

	if calls != 2 {
		t.Errorf("expected GET requests to bypass idempotency, ran %d times", calls)
	}
}

func TestIdempotencyMiddleware_DoesNotCacheFailures(t *testing.T) {
	store := newFakeIdempotencyStore()

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"conflict"}`))
	})

	wrapped := middleware.NewIdempotencyMiddleware(store, time.Minute).Wrap(next)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader("{}"))
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	store.mu.Lock()
	cached := string(store.data["key-1"])
	store.mu.Unlock()

	if cached != "processing" {
		t.Errorf("failed responses must not be cached, found %q", cached)
	}
}
