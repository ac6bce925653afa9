package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/Freeeeeet/tuition_site/internal/validation"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimiter_PerIPAndCleanup(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, zap.NewNop())
	rl.now = func() time.Time { return now }

	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:2000"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2:1000"))
	assert.Len(t, rl.limiters, 2)

	now = now.Add(5 * time.Minute)
	hit("10.0.0.2:1000")
	rl.Cleanup(time.Minute)
	assert.Len(t, rl.limiters, 1)
	assert.Contains(t, rl.limiters, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", clientIP(req))
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusFromError(nil))
	assert.Equal(t, http.StatusNotFound, statusFromError(fmt.Errorf("get parent: %w", service.ErrNotFound)))
	assert.Equal(t, http.StatusConflict, statusFromError(fmt.Errorf("match: %w", service.ErrConflict)))
	assert.Equal(t, http.StatusServiceUnavailable, statusFromError(fmt.Errorf("list: %w", service.ErrUnavailable)))
	assert.Equal(t, http.StatusBadRequest, statusFromError(validation.FieldError("email", "is required")))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(assert.AnError))
}
