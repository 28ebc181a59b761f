package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/esim-marketplace/internal/domain"
)

type PostgresCheckoutRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCheckoutRepository(db *pgxpool.Pool) *PostgresCheckoutRepository {
	return &PostgresCheckoutRepository{
		db: db,
	}
}

func (p *PostgresCheckoutRepository) GetSummary(ctx context.Context, checkoutID string) (*domain.CheckoutSummary, error) {
	query := `
		SELECT
			id,
			status,
			payment_status,
			order_id,
			payment_url,
			package_name,
			package_description,
			quantity,
			total_cents,
			currency,
			created_at,
			updated_at
		FROM checkouts
		WHERE id = $1
	`

	var summary domain.CheckoutSummary

	err := p.db.QueryRow(ctx, query, checkoutID).Scan(
		&summary.ID,
		&summary.Status,
		&summary.PaymentStatus,
		&summary.OrderID,
		&summary.PaymentURL,
		&summary.PackageName,
		&summary.PackageDescription,
		&summary.Quantity,
		&summary.TotalCents,
		&summary.Currency,
		&summary.CreatedAt,
		&summary.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &summary, nil
}

func (p *PostgresCheckoutRepository) UpdateState(
	ctx context.Context,
	checkoutID string,
	status domain.CheckoutStatus,
	paymentStatus domain.PaymentStatus) (domain.PaymentStatus, error) {

	// Stripe keeps reporting an async-failed session as complete and unpaid,
	// which maps to pending. The failure stays.
	query := `
		UPDATE checkouts
		SET status = $1,
			payment_status = CASE
				WHEN payment_status = 'failed' AND $2::text = 'pending' THEN payment_status
				ELSE $2::text
			END,
			updated_at = NOW()
		WHERE id = $3 AND order_id IS NULL
		RETURNING payment_status
	`

	var stored domain.PaymentStatus

	err := p.db.QueryRow(ctx, query, status, paymentStatus, checkoutID).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return paymentStatus, nil
		}

		return "", err
	}

	return stored, nil
}
