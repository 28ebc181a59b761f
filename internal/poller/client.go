package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/metinatakli/esim-marketplace/api"
	"github.com/metinatakli/esim-marketplace/internal/domain"
)

// StatusFetcher reads the current status of a checkout from the API.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, checkoutID string) (*domain.ResolvedStatus, error)
}

// ResponseError is returned for non-2xx answers other than a checkout 404.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the server signalled a transient condition.
func (e *ResponseError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// Client fetches checkout status over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchStatus(ctx context.Context, checkoutID string) (*domain.ResolvedStatus, error) {
	endpoint := fmt.Sprintf("%s/checkouts/%s/status", c.baseURL, url.PathEscape(checkoutID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var errResp api.ErrorResponse
		_ = json.NewDecoder(res.Body).Decode(&errResp)

		// A 404 without the checkout message usually means a wrong base URL.
		if res.StatusCode == http.StatusNotFound && errResp.Message == api.CheckoutNotFoundMessage {
			return nil, fmt.Errorf("%w: %s", ErrCheckoutNotFound, checkoutID)
		}

		return nil, &ResponseError{StatusCode: res.StatusCode, Message: errResp.Message}
	}

	var body api.CheckoutStatusResponse
	err = json.NewDecoder(res.Body).Decode(&body)
	if err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}

	return &domain.ResolvedStatus{
		CheckoutID:    body.CheckoutId,
		Status:        domain.CheckoutStatus(body.Status),
		PaymentStatus: domain.PaymentStatus(body.PaymentStatus),
		OrderID:       body.OrderId,
		PaymentURL:    body.PaymentUrl,
	}, nil
}
