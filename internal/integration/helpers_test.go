package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func executeRequest(handler http.Handler, req *http.Request) *http.Response {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec.Result()
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore nondeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ignored := keysToIgnore[k]
		return ignored
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(content))
	require.NoError(t, err)
}

func truncateTables(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE esims, orders, checkouts CASCADE")
	require.NoError(t, err)
}

func flushCache(t testing.TB, client *redis.Client) {
	require.NoError(t, client.FlushDB(context.Background()).Err())
}

// signedEvent builds a webhook body for a checkout session event, signed with
// the secret the test app is configured with.
func signedEvent(t testing.TB, eventID string, eventType stripe.EventType, cs map[string]any) (string, string) {
	object, err := json.Marshal(cs)
	require.NoError(t, err)

	event := map[string]any{
		"id":          eventID,
		"object":      "event",
		"type":        eventType,
		"api_version": stripe.APIVersion,
		"data": map[string]any{
			"object": json.RawMessage(object),
		},
	}

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    TestWebhookSecret,
		Timestamp: time.Now(),
	})

	return string(signed.Payload), signed.Header
}

type checkoutRow struct {
	Status        string
	PaymentStatus *string
	OrderID       *string
}

func getCheckoutRow(t testing.TB, db *pgxpool.Pool, id string) checkoutRow {
	var row checkoutRow

	err := db.QueryRow(context.Background(),
		`SELECT status, payment_status, order_id FROM checkouts WHERE id = $1`, id,
	).Scan(&row.Status, &row.PaymentStatus, &row.OrderID)
	require.NoError(t, err)

	return row
}

func countOrders(t testing.TB, db *pgxpool.Pool, checkoutID string) int {
	var count int

	err := db.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM orders WHERE checkout_id = $1`, checkoutID,
	).Scan(&count)
	require.NoError(t, err)

	return count
}
