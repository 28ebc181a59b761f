package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metinatakli/esim-marketplace/api"
	"github.com/metinatakli/esim-marketplace/internal/checkout"
	"github.com/metinatakli/esim-marketplace/internal/domain"
	"github.com/metinatakli/esim-marketplace/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoutes(t *testing.T) {
	checkoutRepo := new(mocks.MockCheckoutRepo)
	checkoutRepo.On("GetSummary", mock.Anything, "cs_paid").Return(&domain.CheckoutSummary{
		ID:            "cs_paid",
		Status:        domain.CheckoutStatusComplete,
		PaymentStatus: domain.PaymentStatusPaid.Ptr(),
		OrderID:       ptr("ord_1"),
	}, nil)

	app := newTestApplication(func(a *Application) {
		a.checkoutRepo = checkoutRepo
		a.resolver = checkout.NewResolver(checkoutRepo, new(mocks.MockPaymentProvider))
	})

	router := app.Routes()

	t.Run("health", func(t *testing.T) {
		w, r := executeRequest(t, http.MethodGet, "/v1/health", nil)
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.HealthcheckResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "UP", resp.Status)
		assert.Equal(t, "test", resp.SystemInfo.Environment)
		assert.NotEmpty(t, resp.SystemInfo.Version)
	})

	t.Run("checkout status path parameter is bound", func(t *testing.T) {
		w, r := executeRequest(t, http.MethodGet, "/checkouts/cs_paid/status", nil)
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.CheckoutStatusResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "cs_paid", resp.CheckoutId)
		assert.Equal(t, ptr("ord_1"), resp.OrderId)
		assert.NotEmpty(t, w.Header().Get("Content-Type"))
	})

	t.Run("webhook without signature header", func(t *testing.T) {
		w, r := executeRequest(t, http.MethodPost, "/webhook", `{}`)
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("openapi document", func(t *testing.T) {
		w, r := executeRequest(t, http.MethodGet, "/openapi.json", nil)
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var doc map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
		assert.Contains(t, doc["paths"], "/checkouts/{checkoutId}/status")
	})

	t.Run("unknown route", func(t *testing.T) {
		w, r := executeRequest(t, http.MethodGet, "/nope", nil)
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		checkErrorResponse(t, w, struct {
			wantStatus     int
			wantErrMessage string
		}{
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		})
	})

	t.Run("wrong method", func(t *testing.T) {
		w, r := executeRequest(t, http.MethodDelete, "/v1/health", nil)
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("request id is echoed in error bodies", func(t *testing.T) {
		w, r := executeRequest(t, http.MethodGet, "/nope", nil)
		r.Header.Set("X-Request-Id", "req-123")
		router.ServeHTTP(w, r)

		var resp api.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "req-123", resp.RequestId)
	})
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication()

	handler := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "close", w.Header().Get("Connection"))
	checkErrorResponse(t, w, struct {
		wantStatus     int
		wantErrMessage string
	}{
		wantStatus:     http.StatusInternalServerError,
		wantErrMessage: ErrInternalServer,
	})
}
