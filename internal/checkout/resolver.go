// Package checkout resolves the authoritative payment state of a checkout.
//
// A cached summary is read from the store first. The payment provider is only
// consulted while no order is attached to the checkout: an attached order means
// payment is confirmed for good, so settled checkouts can be polled without
// any provider traffic.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/metinatakli/esim-marketplace/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/esim-marketplace/internal/checkout"

type Resolver struct {
	store         domain.CheckoutStore
	provider      domain.PaymentProvider
	verifyTimeout time.Duration

	tracer        trace.Tracer
	verifications metric.Int64Counter
}

type Option func(*Resolver)

// WithVerifyTimeout bounds each provider call. Zero leaves the caller's
// context as the only bound.
func WithVerifyTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.verifyTimeout = d
	}
}

func NewResolver(store domain.CheckoutStore, provider domain.PaymentProvider, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		provider: provider,
		tracer:   otel.Tracer(instrumentationName),
	}

	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"checkout.verifications",
		metric.WithDescription("Payment provider verification calls made while resolving checkout status"),
	)
	if err != nil {
		counter = noop.Int64Counter{}
	}
	r.verifications = counter

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the payment status of the checkout. The returned error
// matches one of ErrInvalidArgument, ErrNotFound, ErrVerificationUnavailable
// or ErrCancelled, except for store failures which are returned wrapped.
func (r *Resolver) Resolve(ctx context.Context, checkoutID string) (*domain.ResolvedStatus, error) {
	if strings.TrimSpace(checkoutID) == "" {
		return nil, fmt.Errorf("%w: checkout id must not be empty", ErrInvalidArgument)
	}

	ctx, span := r.tracer.Start(ctx, "checkout.resolve", trace.WithAttributes(
		attribute.String("checkout.id", checkoutID),
	))
	defer span.End()

	summary, err := r.store.GetSummary(ctx, checkoutID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, checkoutID)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "store read failed")
		return nil, fmt.Errorf("get checkout summary %s: %w", checkoutID, err)
	}

	if summary == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, checkoutID)
	}

	if summary.OrderID != nil {
		span.SetAttributes(attribute.Bool("checkout.verified", false))
		return merge(checkoutID, summary, nil), nil
	}

	result, err := r.verify(ctx, checkoutID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "verification failed")
		return nil, err
	}

	span.SetAttributes(attribute.Bool("checkout.verified", true))

	return merge(checkoutID, summary, result), nil
}

func (r *Resolver) verify(ctx context.Context, checkoutID string) (*domain.VerificationResult, error) {
	verifyCtx := ctx
	if r.verifyTimeout > 0 {
		var cancel context.CancelFunc
		verifyCtx, cancel = context.WithTimeout(ctx, r.verifyTimeout)
		defer cancel()
	}

	result, err := r.provider.Verify(verifyCtx, checkoutID)
	switch {
	case ctx.Err() != nil:
		r.countVerification(ctx, "cancelled")
		return nil, fmt.Errorf("%w: %w: %w", ErrVerificationUnavailable, ErrCancelled, ctx.Err())
	case err != nil:
		r.countVerification(ctx, "error")
		return nil, fmt.Errorf("%w: %w", ErrVerificationUnavailable, err)
	case result == nil:
		r.countVerification(ctx, "error")
		return nil, fmt.Errorf("%w: provider returned no result", ErrVerificationUnavailable)
	}

	r.countVerification(ctx, "ok")

	return result, nil
}

func (r *Resolver) countVerification(ctx context.Context, outcome string) {
	r.verifications.Add(context.WithoutCancel(ctx), 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// merge builds the resolved view. Verification, when present, owns the payment
// status and order id; everything else comes from the cached summary.
func merge(checkoutID string, summary *domain.CheckoutSummary, result *domain.VerificationResult) *domain.ResolvedStatus {
	resolved := &domain.ResolvedStatus{
		CheckoutID:    checkoutID,
		Status:        summary.Status,
		PaymentStatus: domain.PaymentStatusPending,
		OrderID:       summary.OrderID,
		PaymentURL:    summary.PaymentURL,
	}

	paymentStatus := summary.PaymentStatus

	if result != nil {
		resolved.OrderID = result.OrderID
		if result.PaymentStatus != nil {
			paymentStatus = result.PaymentStatus
		}
	}

	if paymentStatus != nil && *paymentStatus != "" {
		resolved.PaymentStatus = *paymentStatus
	}

	return resolved
}
