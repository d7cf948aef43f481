package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/infrastructure/ratelimit"
	"hotelops/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockRateLimiter struct {
	AllowFunc func(ctx context.Context, key string, policy ratelimit.Policy) (bool, error)
	keys      []string
}

func (m *mockRateLimiter) Allow(ctx context.Context, key string, policy ratelimit.Policy) (bool, error) {
	m.keys = append(m.keys, key)
	return m.AllowFunc(ctx, key, policy)
}

func (m *mockRateLimiter) Remaining(ctx context.Context, key string, policy ratelimit.Policy) (int64, error) {
	return 0, nil
}

func (m *mockRateLimiter) Reset(ctx context.Context, key string) error {
	return nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(mw...)
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return engine
}

func serve(engine *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	engine := newEngine(RequestID())

	w := serve(engine, http.MethodGet, "/ping", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())

	w = serve(engine, http.MethodGet, "/ping", nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		origin      string
		wantAllowed string
	}{
		{"listed origin", []string{"http://desk.hotel.test"}, "http://desk.hotel.test", "http://desk.hotel.test"},
		{"unlisted origin", []string{"http://desk.hotel.test"}, "http://evil.test", ""},
		{"wildcard", []string{"*"}, "http://anything.test", "http://anything.test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine(CORS(tt.allowed))
			w := serve(engine, http.MethodGet, "/ping", map[string]string{"Origin": tt.origin})
			assert.Equal(t, tt.wantAllowed, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	t.Run("preflight", func(t *testing.T) {
		engine := newEngine(CORS([]string{"*"}))
		engine.OPTIONS("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })
		w := serve(engine, http.MethodOptions, "/ping", map[string]string{"Origin": "http://desk.hotel.test"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	policy := ratelimit.Policy{Limit: 2, Window: 0}

	t.Run("rejects over budget", func(t *testing.T) {
		calls := 0
		limiter := &mockRateLimiter{AllowFunc: func(ctx context.Context, key string, p ratelimit.Policy) (bool, error) {
			calls++
			return calls <= p.Limit, nil
		}}
		engine := newEngine(RateLimit(limiter, policy, logger.Nop()))

		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/ping", nil).Code)
		}
		w := serve(engine, http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		require.NotEmpty(t, limiter.keys)
		assert.Equal(t, "ip:192.0.2.1", limiter.keys[0])
	})

	t.Run("fails open", func(t *testing.T) {
		limiter := &mockRateLimiter{AllowFunc: func(ctx context.Context, key string, p ratelimit.Policy) (bool, error) {
			return false, fmt.Errorf("redis: connection refused")
		}}
		engine := newEngine(RateLimit(limiter, policy, logger.Nop()))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/ping", nil).Code)
	})
}

func TestRecovery(t *testing.T) {
	engine := newEngine(RequestID(), Logger(logger.Nop()), Recovery(logger.Nop()))

	w := serve(engine, http.MethodGet, "/panic", map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error occurred")
	assert.NotContains(t, w.Body.String(), "secret")
}
