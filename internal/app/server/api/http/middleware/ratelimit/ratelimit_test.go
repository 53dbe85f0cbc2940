package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestLimiter_Allow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(1, 2, slog.Default())
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "burst exhausted")

	assert.True(t, l.Allow("10.0.0.2"), "other clients are independent")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "token refilled")
}

func TestLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(1, 1, slog.Default())
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(idleTTL + time.Second)
	l.Allow("10.0.0.2")

	assert.Len(t, l.visitors, 1)
}

func TestLimiter_Middleware(t *testing.T) {
	l := New(0.001, 1, slog.Default())
	mw := l.Middleware()

	call := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/share/x", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		rec := httptest.NewRecorder()
		mw(humatest.NewContext(&huma.Operation{}, req, rec), func(ctx huma.Context) {
			ctx.SetStatus(http.StatusOK)
		})
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call())
	assert.Equal(t, http.StatusTooManyRequests, call())
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "192.0.2.1", clientIP("192.0.2.1:80"))
	assert.Equal(t, "::1", clientIP("[::1]:80"))
	assert.Equal(t, "192.0.2.1", clientIP("192.0.2.1"))
}
