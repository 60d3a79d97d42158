package cache

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestLRUCache(t *testing.T) {
	tests := []struct {
		name string
		fn   func(t *testing.T)
	}{
		{"SetAndGet", testSetAndGet},
		{"GetMiss", testGetMiss},
		{"GetExpired", testGetExpired},
		{"SetOverMaxSizeEvictsLeastRecent", testSetOverMaxSizeEvictsOldest},
		{"GetRefreshesRecency", testGetRefreshesRecency},
		{"SetExistingDoesNotEvict", testSetExistingDoesNotEvict},
		{"InvalidateTag", testInvalidateTag},
		{"InvalidateAll", testInvalidateAll},
		{"ConcurrentAccess", testConcurrentAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.fn)
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(maxSize int, ttl time.Duration) (*LRUCache, *fakeClock) {
	clk := &fakeClock{now: time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache(maxSize, ttl)
	c.now = clk.Now
	return c, clk
}

func testSetAndGet(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("/api/v1/reports", "reports", Entry{Body: []byte("[]"), ContentType: "application/json"})

	got, ok := c.Get("/api/v1/reports")
	if !ok {
		t.Fatal("expected cache hit, got miss")
	}
	if string(got.Body) != "[]" || got.ContentType != "application/json" {
		t.Fatalf("unexpected entry %+v", got)
	}
}

func testGetMiss(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	if _, ok := c.Get("nonexistent"); ok {
		t.Fatal("expected cache miss, got hit")
	}
}

func testGetExpired(t *testing.T) {
	c, clk := newTestCache(10, time.Minute)
	c.Set("k", "reports", Entry{Body: []byte("v")})
	clk.Advance(30 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected hit before expiry")
	}
	clk.Advance(31 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after expiry")
	}
	if c.Size() != 0 {
		t.Fatalf("expected expired entry removed, size %d", c.Size())
	}
}

func testSetOverMaxSizeEvictsOldest(t *testing.T) {
	c, clk := newTestCache(3, time.Minute)
	for i := 1; i <= 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), "", Entry{Body: []byte("v")})
		clk.Advance(time.Millisecond)
	}
	c.Set("k4", "", Entry{Body: []byte("v")})

	if c.Size() != 3 {
		t.Fatalf("expected size 3, got %d", c.Size())
	}
	if _, ok := c.Get("k1"); ok {
		t.Fatal("expected k1 evicted")
	}
	for _, k := range []string{"k2", "k3", "k4"} {
		if _, ok := c.Get(k); !ok {
			t.Fatalf("expected %s present", k)
		}
	}
}

func testGetRefreshesRecency(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", "", Entry{Body: []byte("1")})
	c.Set("b", "", Entry{Body: []byte("2")})
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a present")
	}
	c.Set("c", "", Entry{Body: []byte("3")})

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b evicted as least recently used")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Fatalf("expected %s present", k)
		}
	}
}

func testSetExistingDoesNotEvict(t *testing.T) {
	c, clk := newTestCache(2, time.Minute)
	c.Set("a", "", Entry{Body: []byte("1")})
	clk.Advance(time.Millisecond)
	c.Set("b", "", Entry{Body: []byte("2")})
	clk.Advance(time.Millisecond)
	c.Set("a", "", Entry{Body: []byte("3")})

	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
	got, ok := c.Get("a")
	if !ok || string(got.Body) != "3" {
		t.Fatalf("expected updated value, got %q %v", got.Body, ok)
	}
}

func testInvalidateTag(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("/api/v1/reports", "reports", Entry{Body: []byte("a")})
	c.Set("/api/v1/reports?filter=pending", "reports", Entry{Body: []byte("b")})
	c.Set("/api/v1/videos", "videos", Entry{Body: []byte("c")})

	if n := c.InvalidateTag("reports"); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if _, ok := c.Get("/api/v1/videos"); !ok {
		t.Fatal("expected other sections untouched")
	}
	c.Invalidate("/api/v1/videos")
	if c.Size() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Size())
	}
}

func testInvalidateAll(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("a", "x", Entry{})
	c.Set("b", "y", Entry{})
	c.InvalidateAll()
	if c.Size() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Size())
	}
}

func testConcurrentAccess(t *testing.T) {
	c := NewLRUCache(50, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%10)
			c.Set(key, "t", Entry{Body: []byte(key)})
			c.Get(key)
			if n%5 == 0 {
				c.InvalidateTag("t")
			}
		}(i)
	}
	wg.Wait()
	if c.Size() > 10 {
		t.Fatalf("expected at most 10 keys, got %d", c.Size())
	}
}

func TestMiddleware(t *testing.T) {
	calls := 0
	status := http.StatusOK
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"call":%d}`, calls)
	})
	c := NewLRUCache(10, time.Minute)
	wrapped := Middleware(c, "reports")(handler)

	do := func(method, target string, hdr map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		for k, v := range hdr {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodGet, "/api/v1/reports", nil)
	if rec.Header().Get(Header) != "MISS" {
		t.Fatalf("expected MISS, got %q", rec.Header().Get(Header))
	}

	rec = do(http.MethodGet, "/api/v1/reports", nil)
	if rec.Header().Get(Header) != "HIT" {
		t.Fatalf("expected HIT, got %q", rec.Header().Get(Header))
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected content type preserved, got %q", rec.Header().Get("Content-Type"))
	}
	body, _ := io.ReadAll(rec.Result().Body)
	if string(body) != `{"call":1}` {
		t.Fatalf("expected cached body, got %q", body)
	}

	do(http.MethodGet, "/api/v1/reports?filter=pending", nil)
	if calls != 2 {
		t.Fatalf("expected separate key per query, calls=%d", calls)
	}

	do(http.MethodPost, "/api/v1/reports", nil)
	do(http.MethodPost, "/api/v1/reports", nil)
	if calls != 4 {
		t.Fatalf("expected POST to pass through, calls=%d", calls)
	}

	rec = do(http.MethodGet, "/api/v1/reports", map[string]string{"Cache-Control": "no-cache"})
	if rec.Header().Get(Header) != "MISS" || calls != 5 {
		t.Fatalf("expected no-cache to bypass lookup, header=%q calls=%d", rec.Header().Get(Header), calls)
	}

	status = http.StatusNotFound
	do(http.MethodGet, "/api/v1/reports/99", nil)
	do(http.MethodGet, "/api/v1/reports/99", nil)
	if calls != 7 {
		t.Fatalf("expected non-200 not cached, calls=%d", calls)
	}
}

func TestMiddlewareInvalidationDuringRequest(t *testing.T) {
	serve := func(c *LRUCache, during func()) http.Handler {
		return Middleware(c, "reports")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "stale")
			during()
		}))
	}
	get := func(h http.Handler) string {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil))
		return rec.Header().Get(Header)
	}

	tests := []struct {
		name string
		fn   func(t *testing.T)
	}{
		{"InvalidateTagSkipsStore", func(t *testing.T) {
			c := NewLRUCache(10, time.Minute)
			h := serve(c, func() { c.InvalidateTag("reports") })
			get(h)
			if c.Size() != 0 {
				t.Fatalf("expected stale response not stored, size=%d", c.Size())
			}
			if got := get(h); got != "MISS" {
				t.Fatalf("expected MISS after invalidation, got %q", got)
			}
		}},
		{"InvalidateAllSkipsStore", func(t *testing.T) {
			c := NewLRUCache(10, time.Minute)
			get(serve(c, c.InvalidateAll))
			if c.Size() != 0 {
				t.Fatalf("expected stale response not stored, size=%d", c.Size())
			}
		}},
		{"OtherTagStillStores", func(t *testing.T) {
			c := NewLRUCache(10, time.Minute)
			h := serve(c, func() { c.InvalidateTag("users") })
			get(h)
			if got := get(h); got != "HIT" {
				t.Fatalf("expected HIT, got %q", got)
			}
		}},
		{"SetIfGeneration", func(t *testing.T) {
			c := NewLRUCache(10, time.Minute)
			gen := c.Generation("reports")
			c.InvalidateTag("reports")
			if c.SetIfGeneration("k", "reports", Entry{Body: []byte("x")}, gen) {
				t.Fatal("expected outdated generation to be rejected")
			}
			if !c.SetIfGeneration("k", "reports", Entry{Body: []byte("x")}, c.Generation("reports")) {
				t.Fatal("expected current generation to be stored")
			}
			if _, ok := c.Get("k"); !ok {
				t.Fatal("expected entry stored")
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.fn)
	}
}

func TestManager(t *testing.T) {
	var nilManager *Manager
	if NewManager(Config{Enabled: false}) != nil {
		t.Fatal("expected nil manager when disabled")
	}
	if nilManager.InvalidateSection("reports") != 0 || nilManager.Size() != 0 {
		t.Fatal("nil manager should be inert")
	}
	nilManager.InvalidateAll()

	m := NewManager(DefaultConfig())
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	for _, tc := range []struct{ tag, path string }{
		{"reports", "/api/v1/reports"},
		{"videos", "/api/v1/videos"},
		{TagStats, "/api/v1/stats"},
	} {
		m.Section(tc.tag)(ok).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))
	}
	if m.Size() != 3 {
		t.Fatalf("expected 3 entries, got %d", m.Size())
	}
	if n := m.InvalidateSection("reports"); n != 2 {
		t.Fatalf("expected reports and stats dropped, got %d", n)
	}
	if m.Size() != 1 {
		t.Fatalf("expected videos entry kept, got %d", m.Size())
	}

	rec := httptest.NewRecorder()
	nilManager.Section("reports")(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil))
	if rec.Header().Get(Header) != "" {
		t.Fatal("nil manager should not touch responses")
	}
}
