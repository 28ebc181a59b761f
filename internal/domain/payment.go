package domain

import "context"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Ptr() *PaymentStatus {
	return &s
}

// PaymentProvider verifies a checkout against the payment provider. When the
// provider confirms payment, the implementation is responsible for attaching
// an order to the checkout before returning its id.
type PaymentProvider interface {
	Verify(ctx context.Context, checkoutID string) (*VerificationResult, error)
}
