package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/esim-marketplace/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const webhookEventTTL = 24 * time.Hour

// HandleWebhook verifies and applies a Stripe webhook delivery. Each event is
// applied at most once; redeliveries return domain.ErrDuplicateWebhook.
func (s *StripePaymentProvider) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidSignature, err)
	}

	logger := s.logger.With("event_id", event.ID, "event_type", event.Type)

	if !isCheckoutEvent(event.Type) {
		logger.Debug("ignoring unhandled webhook event")
		return nil
	}

	key := webhookEventKey(event.ID)

	acquired, err := s.redis.SetNX(ctx, key, time.Now().Unix(), webhookEventTTL).Result()
	if err != nil {
		return fmt.Errorf("record webhook event %s: %w", event.ID, err)
	}

	if !acquired {
		logger.Info("duplicate webhook event skipped")
		return domain.ErrDuplicateWebhook
	}

	err = s.applyEvent(ctx, event)
	if err != nil {
		// Release the key so the provider's retry is processed.
		delErr := s.redis.Del(context.WithoutCancel(ctx), key).Err()
		if delErr != nil {
			logger.Error("failed to release webhook event key", "error", delErr)
		}

		return err
	}

	logger.Info("webhook event applied")

	return nil
}

func (s *StripePaymentProvider) applyEvent(ctx context.Context, event stripe.Event) error {
	var cs stripe.CheckoutSession

	err := json.Unmarshal(event.Data.Raw, &cs)
	if err != nil {
		return fmt.Errorf("decode checkout session from event %s: %w", event.ID, err)
	}

	if cs.ID == "" {
		return errors.New("checkout session event without session id")
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
		// The session stays "complete" but the delayed payment did not settle.
		status, _ := sessionState(&cs)
		_, err = s.checkoutRepo.UpdateState(ctx, cs.ID, status, domain.PaymentStatusFailed)
		return err
	default:
		_, err = s.apply(ctx, cs.ID, &cs)
		return err
	}
}

func isCheckoutEvent(t stripe.EventType) bool {
	switch t {
	case stripe.EventTypeCheckoutSessionCompleted,
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded,
		stripe.EventTypeCheckoutSessionAsyncPaymentFailed,
		stripe.EventTypeCheckoutSessionExpired:
		return true
	default:
		return false
	}
}

func webhookEventKey(eventID string) string {
	return fmt.Sprintf("stripe_event:%s", eventID)
}
