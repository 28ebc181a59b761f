package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/metinatakli/esim-marketplace/internal/domain"
)

var (
	// ErrStillProcessing means polling stopped before the checkout reached a
	// terminal state. The payment may still settle later.
	ErrStillProcessing = errors.New("checkout is still processing")

	// ErrCheckoutNotFound means the checkout does not exist. Polling stops
	// immediately.
	ErrCheckoutNotFound = errors.New("checkout not found")

	errNotTerminal = errors.New("checkout not in a terminal state")
)

// StillProcessingError is returned when attempts or time run out. Last is the
// most recent status the server returned, nil if no attempt succeeded.
type StillProcessingError struct {
	Last     *domain.ResolvedStatus
	Attempts int
	cause    error
}

func (e *StillProcessingError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("%s after %d attempts: %v", ErrStillProcessing, e.Attempts, e.cause)
	}
	return fmt.Sprintf("%s after %d attempts: payment %s", ErrStillProcessing, e.Attempts, e.Last.PaymentStatus)
}

func (e *StillProcessingError) Unwrap() []error {
	if e.cause == nil || errors.Is(e.cause, errNotTerminal) {
		return []error{ErrStillProcessing}
	}
	return []error{ErrStillProcessing, e.cause}
}

// Config bounds a poll. Zero MaxAttempts or zero Timeout lifts that bound,
// leaving the caller's context as the only limit.
type Config struct {
	Interval    time.Duration
	MaxAttempts uint
	Timeout     time.Duration
}

var DefaultConfig = Config{
	Interval:    2 * time.Second,
	MaxAttempts: 30,
	Timeout:     2 * time.Minute,
}

type Poller struct {
	fetcher StatusFetcher
	cfg     Config
	logger  *slog.Logger
}

type Option func(*Poller)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		p.logger = logger
	}
}

func New(fetcher StatusFetcher, cfg Config, opts ...Option) *Poller {
	p := &Poller{
		fetcher: fetcher,
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Poll fetches the checkout status at a fixed interval until it is terminal.
// A missing checkout ends polling with ErrCheckoutNotFound, other client
// errors are returned as is, and server errors are retried. Running out of
// attempts or time yields a *StillProcessingError.
func (p *Poller) Poll(ctx context.Context, checkoutID string) (*domain.ResolvedStatus, error) {
	var (
		last     *domain.ResolvedStatus
		attempts int
	)

	operation := func() (*domain.ResolvedStatus, error) {
		attempts++

		status, err := p.fetcher.FetchStatus(ctx, checkoutID)
		if err != nil {
			if !retryable(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}

		last = status

		if status.IsTerminal() {
			return status, nil
		}

		return nil, errNotTerminal
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(backoff.NewConstantBackOff(p.cfg.Interval)),
		backoff.WithMaxTries(p.cfg.MaxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			p.logger.Debug("checkout not settled, retrying",
				"checkout_id", checkoutID,
				"attempt", attempts,
				"next", next,
				"reason", err,
			)
		}),
		backoff.WithMaxElapsedTime(elapsedLimit(p.cfg)),
	}

	status, err := backoff.Retry(ctx, operation, opts...)
	if err == nil {
		return status, nil
	}

	switch {
	case ctx.Err() != nil:
		return last, fmt.Errorf("poll checkout %s: %w", checkoutID, err)
	case errors.Is(err, ErrCheckoutNotFound):
		return nil, err
	case !retryable(err):
		return last, fmt.Errorf("poll checkout %s: %w", checkoutID, err)
	}

	return last, &StillProcessingError{Last: last, Attempts: attempts, cause: err}
}

// elapsedLimit maps Config.Timeout onto backoff's elapsed time bound. Leaving
// the option out would fall back to backoff.DefaultMaxElapsedTime, while an
// explicit zero disables the check.
func elapsedLimit(cfg Config) time.Duration {
	if cfg.Timeout < 0 {
		return 0
	}
	return cfg.Timeout
}

func retryable(err error) bool {
	if errors.Is(err, ErrCheckoutNotFound) {
		return false
	}

	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.Retryable()
	}

	// Transport failures are treated as transient.
	return true
}
