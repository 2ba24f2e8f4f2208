package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestKeyByTenantOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	// Build a context with a known RemoteAddr
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// Ensure a deterministic IP for ClientIP()
	req.RemoteAddr = net.JoinHostPort("203.0.113.9", "12345")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	// IP fallback when no tenant_id
	key := KeyByTenantOrIP()(c)
	if !strings.HasPrefix(key, "ip:") || !strings.Contains(key, "203.0.113.9") {
		t.Fatalf("expected ip-based key; got %q", key)
	}

	// Prefer tenant_id when present
	req2 := httptest.NewRequest(http.MethodGet, "/widget?tenant_id=t123", nil)
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = req2
	if key2 := KeyByTenantOrIP()(c2); key2 != "tenant:t123" {
		t.Fatalf("expected tenant-based key; got %q", key2)
	}
}

func TestNewRateLimiter_BurstCoercion_AndGetVisitorReuse(t *testing.T) {
	rl := NewRateLimiter(2.0, 0, KeyByTenantOrIP()) // burst<=0 coerced to 1
	if rl.burst != 1 {
		t.Fatalf("burst coercion failed, got %d", rl.burst)
	}

	// First call creates limiter
	lim := rl.getVisitor("k1")
	if lim == nil {
		t.Fatalf("expected limiter")
	}
	// Second call reuses same limiter (pointer equality via map lookup)
	if got := rl.getVisitor("k1"); got != lim {
		t.Fatalf("expected same limiter instance to be reused")
	}
}

func TestRateLimiter_getVisitor_GC(t *testing.T) {
	rl := NewRateLimiter(1.0, 1, KeyByTenantOrIP())
	// Make TTL immediate so anything old gets evicted
	rl.ttl = 1 * time.Nanosecond

	// Seed an old visitor
	rl.mu.Lock()
	rl.visitors["old"] = &visitor{
		limiter:  rate.NewLimiter(1, 1),
		lastSeen: time.Now().Add(-time.Hour),
	}
	// Force cleanup to run on next getVisitor by setting cleanupN to 4999
	rl.cleanupN = 4999
	rl.mu.Unlock()

	// Trigger cleanup by calling getVisitor for a different key
	_ = rl.getVisitor("new")

	rl.mu.Lock()
	_, existsOld := rl.visitors["old"]
	_, existsNew := rl.visitors["new"]
	rl.mu.Unlock()
	if existsOld {
		t.Fatalf("expected 'old' visitor to be evicted by opportunistic GC")
	}
	if !existsNew {
		t.Fatalf("expected 'new' visitor to be created")
	}
}

func TestRateLimiter_Handler_Allow_And_Deny(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// rps=1, burst=1 -> first immediate request allowed, second denied
	rl := NewRateLimiter(1.0, 1, KeyByTenantOrIP())

	// Router with only the rate limiter and a simple 200 handler
	r := gin.New()
	// Set a request-id header like our real stack would, so JSON has it (may be empty otherwise)
	r.Use(func(c *gin.Context) { c.Header("X-Request-ID", "rid-1"); c.Next() })
	r.Use(rl.Handler())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// First request (should be allowed)
	w1 := httptest.NewRecorder()
	req1 := httptest.NewRequest(http.MethodGet, "/ok", nil)
	r.ServeHTTP(w1, req1)
	if w1.Code != http.StatusOK {
		t.Fatalf("first request should be allowed, got %d", w1.Code)
	}

	// Second immediate request (should be 429)
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ok", nil)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("second request should be rate-limited, got %d", w2.Code)
	}
	if got := w2.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("expected Retry-After=1, got %q", got)
	}
	var body map[string]any
	if err := json.Unmarshal(w2.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["code"] != "rate_limited" || body["message"] != "rate limit exceeded" {
		t.Fatalf("unexpected JSON body: %v", body)
	}
}

func TestRateLimiter_Handler_TenantsGetSeparateBuckets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1.0, 1, KeyByTenantOrIP())
	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// Exhaust tenant t1's bucket.
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/ok?tenant_id=t1", nil))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ok?tenant_id=t1", nil))
	if w1.Code != http.StatusOK || w2.Code != http.StatusTooManyRequests {
		t.Fatalf("t1 bucket behavior unexpected: %d then %d", w1.Code, w2.Code)
	}

	// Tenant t2 is unaffected.
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/ok?tenant_id=t2", nil))
	if w3.Code != http.StatusOK {
		t.Fatalf("t2 should have its own bucket, got %d", w3.Code)
	}
}
