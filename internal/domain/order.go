package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID            string
	CheckoutID    string
	TotalCents    int64
	Currency      string
	CustomerEmail *string
	PackageName   string
	Quantity      int
	CreatedAt     time.Time
}

func NewOrderID() string {
	return fmt.Sprintf("ord_%s", uuid.New().String())
}

type OrderRepository interface {
	// AttachOrder creates the order for a paid checkout and records its id on
	// the checkout. If an order is already attached, that order is returned
	// with created set to false.
	AttachOrder(ctx context.Context, checkoutID string, customerEmail *string) (order *Order, created bool, err error)
}
