package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRateLimit(t *testing.T) {
	app := newTestApplication(func(a *Application) {
		a.limiter = newClientRateLimiter(1, 2)
	})
	handler := app.Routes()

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
		r.RemoteAddr = remoteAddr
		handler.ServeHTTP(w, r)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:4000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:4001").Code)

	w := send("10.0.0.1:4002")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, rateLimitRetryAfter, w.Header().Get("Retry-After"))
	checkErrorResponse(t, w, struct {
		wantStatus     int
		wantErrMessage string
	}{http.StatusTooManyRequests, ErrRateLimitExceeded})

	// other clients keep their own bucket
	assert.Equal(t, http.StatusOK, send("10.0.0.2:4000").Code)
}

func TestRateLimitSkipsWebhook(t *testing.T) {
	webhooks := &MockWebhookProcessor{}
	webhooks.On("HandleWebhook", mock.Anything, mock.Anything, "sig").Return(nil)

	app := newTestApplication(func(a *Application) {
		a.limiter = newClientRateLimiter(1, 1)
		a.webhooks = webhooks
	})
	handler := app.Routes()

	for range 3 {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/webhook", nil)
		r.Header.Set("Stripe-Signature", "sig")
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	handler := newTestApplication().Routes()

	for range 20 {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestClientRateLimiterSweepsIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	l := newClientRateLimiter(1, 1)
	l.now = func() time.Time { return now }
	l.lastSweep = now

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))

	now = now.Add(limiterIdleExpiry + time.Second)
	assert.True(t, l.allow("10.0.0.2"))

	l.mu.Lock()
	_, kept := l.clients["10.0.0.1"]
	l.mu.Unlock()

	assert.False(t, kept)
}
