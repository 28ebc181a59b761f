package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/metinatakli/esim-marketplace/internal/domain"
	"github.com/metinatakli/esim-marketplace/internal/mailer"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// SessionGetter retrieves a checkout session from the payment provider.
type SessionGetter func(ctx context.Context, id string) (*stripe.CheckoutSession, error)

type StripePaymentProvider struct {
	getSession    SessionGetter
	checkoutRepo  domain.CheckoutRepository
	orderRepo     domain.OrderRepository
	redis         redis.UniversalClient
	mailer        mailer.Mailer
	logger        *slog.Logger
	webhookSecret string
}

type Option func(*StripePaymentProvider)

func WithSessionGetter(getter SessionGetter) Option {
	return func(s *StripePaymentProvider) {
		s.getSession = getter
	}
}

func NewStripePaymentProvider(
	checkoutRepo domain.CheckoutRepository,
	orderRepo domain.OrderRepository,
	redisClient redis.UniversalClient,
	mailer mailer.Mailer,
	logger *slog.Logger,
	webhookSecret string,
	opts ...Option) *StripePaymentProvider {

	s := &StripePaymentProvider{
		getSession:    getStripeSession,
		checkoutRepo:  checkoutRepo,
		orderRepo:     orderRepo,
		redis:         redisClient,
		mailer:        mailer,
		logger:        logger,
		webhookSecret: webhookSecret,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func getStripeSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	return session.Get(id, params)
}

// Verify fetches the live checkout session and records its state. A paid
// session gets an order attached before the result is returned.
func (s *StripePaymentProvider) Verify(ctx context.Context, checkoutID string) (*domain.VerificationResult, error) {
	cs, err := s.getSession(ctx, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("retrieve stripe checkout session %s: %w", checkoutID, err)
	}

	return s.apply(ctx, checkoutID, cs)
}

func (s *StripePaymentProvider) apply(
	ctx context.Context,
	checkoutID string,
	cs *stripe.CheckoutSession) (*domain.VerificationResult, error) {

	status, paymentStatus := sessionState(cs)

	if paymentStatus != domain.PaymentStatusPaid {
		stored, err := s.checkoutRepo.UpdateState(ctx, checkoutID, status, paymentStatus)
		if err != nil {
			return nil, fmt.Errorf("record state of checkout %s: %w", checkoutID, err)
		}

		return &domain.VerificationResult{PaymentStatus: stored.Ptr()}, nil
	}

	order, created, err := s.orderRepo.AttachOrder(ctx, checkoutID, customerEmail(cs))
	if err != nil {
		return nil, fmt.Errorf("attach order to checkout %s: %w", checkoutID, err)
	}

	if created {
		s.logger.Info("order created for paid checkout", "checkout_id", checkoutID, "order_id", order.ID)
		s.sendConfirmation(ctx, order)
	}

	return &domain.VerificationResult{
		PaymentStatus: domain.PaymentStatusPaid.Ptr(),
		OrderID:       &order.ID,
	}, nil
}

func (s *StripePaymentProvider) sendConfirmation(ctx context.Context, order *domain.Order) {
	if order.CustomerEmail == nil || *order.CustomerEmail == "" {
		s.logger.Warn("order has no customer email, skipping confirmation", "order_id", order.ID)
		return
	}

	data := mailer.OrderConfirmation{
		OrderID:     order.ID,
		PackageName: order.PackageName,
		Quantity:    order.Quantity,
		TotalAmount: FormatAmount(order.TotalCents),
		Currency:    order.Currency,
	}

	go func(ctx context.Context) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.ErrorContext(ctx, "panic occurred during sending order confirmation", "panic", err)
			}
		}()

		err := s.mailer.Send(*order.CustomerEmail, mailer.OrderConfirmedTemplate, data)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to send order confirmation", "order_id", order.ID, "error", err)
		}
	}(context.WithoutCancel(ctx))
}

// sessionState maps a Stripe checkout session onto checkout and payment
// states. An expired session that was never paid counts as failed.
func sessionState(cs *stripe.CheckoutSession) (domain.CheckoutStatus, domain.PaymentStatus) {
	status := domain.CheckoutStatus(cs.Status)
	if status == "" {
		status = domain.CheckoutStatusOpen
	}

	switch {
	case cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return status, domain.PaymentStatusPaid
	case cs.Status == stripe.CheckoutSessionStatusExpired:
		return status, domain.PaymentStatusFailed
	default:
		return status, domain.PaymentStatusPending
	}
}

func customerEmail(cs *stripe.CheckoutSession) *string {
	if cs.CustomerDetails != nil && cs.CustomerDetails.Email != "" {
		return &cs.CustomerDetails.Email
	}

	if cs.CustomerEmail != "" {
		return &cs.CustomerEmail
	}

	return nil
}

// FormatAmount renders minor currency units as a decimal string, e.g. 1250
// becomes "12.50".
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
