package domain

import (
	"context"
	"time"
)

type CheckoutStatus string

const (
	CheckoutStatusOpen     CheckoutStatus = "open"
	CheckoutStatusComplete CheckoutStatus = "complete"
	CheckoutStatusExpired  CheckoutStatus = "expired"
)

// CheckoutSummary is a snapshot of a checkout as last recorded in the store.
// OrderID is set once payment is confirmed and never changes afterwards.
type CheckoutSummary struct {
	ID                 string
	Status             CheckoutStatus
	PaymentStatus      *PaymentStatus
	OrderID            *string
	PaymentURL         *string
	PackageName        string
	PackageDescription string
	Quantity           int
	TotalCents         int64
	Currency           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// VerificationResult is the payment state reported by a live provider call.
type VerificationResult struct {
	PaymentStatus *PaymentStatus
	OrderID       *string
}

// ResolvedStatus is the authoritative payment view of a checkout returned to
// clients.
type ResolvedStatus struct {
	CheckoutID    string
	Status        CheckoutStatus
	PaymentStatus PaymentStatus
	OrderID       *string
	PaymentURL    *string
}

// IsTerminal reports whether polling for this checkout can stop.
func (r ResolvedStatus) IsTerminal() bool {
	return r.OrderID != nil ||
		r.PaymentStatus == PaymentStatusFailed ||
		r.Status == CheckoutStatusExpired
}

type CheckoutStore interface {
	GetSummary(ctx context.Context, checkoutID string) (*CheckoutSummary, error)
}

type CheckoutRepository interface {
	CheckoutStore
	// UpdateState records provider-reported state for a checkout that has no
	// order yet and returns the payment status now stored. A recorded failure
	// is never downgraded to pending. Checkouts with an attached order are
	// left untouched.
	UpdateState(ctx context.Context, checkoutID string, status CheckoutStatus, paymentStatus PaymentStatus) (PaymentStatus, error)
}
