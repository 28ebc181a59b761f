package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/esim-marketplace/internal/domain"
)

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

func (p *PostgresOrderRepository) AttachOrder(
	ctx context.Context,
	checkoutID string,
	customerEmail *string) (*domain.Order, bool, error) {

	var (
		order   *domain.Order
		created bool
	)

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		// The row lock serializes concurrent attach attempts for the same checkout.
		query := `
			SELECT order_id, total_cents, currency, package_name, quantity
			FROM checkouts
			WHERE id = $1
			FOR UPDATE
		`

		var (
			existingOrderID *string
			newOrder        = domain.Order{CheckoutID: checkoutID, CustomerEmail: customerEmail}
		)

		err := tx.QueryRow(ctx, query, checkoutID).Scan(
			&existingOrderID,
			&newOrder.TotalCents,
			&newOrder.Currency,
			&newOrder.PackageName,
			&newOrder.Quantity,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if existingOrderID != nil {
			order, err = getOrder(ctx, tx, "o.id = $1", *existingOrderID)
			return err
		}

		newOrder.ID = domain.NewOrderID()

		query = `
			INSERT INTO orders (id, checkout_id, total_cents, currency, customer_email)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			newOrder.ID,
			newOrder.CheckoutID,
			newOrder.TotalCents,
			newOrder.Currency,
			newOrder.CustomerEmail,
		).Scan(&newOrder.CreatedAt)
		if err != nil {
			return err
		}

		query = `
			UPDATE checkouts
			SET order_id = $1, payment_status = 'paid', status = 'complete', updated_at = NOW()
			WHERE id = $2
		`

		_, err = tx.Exec(ctx, query, newOrder.ID, checkoutID)
		if err != nil {
			return err
		}

		order = &newOrder
		created = true

		return nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			existing, getErr := getOrder(ctx, p.db, "o.checkout_id = $1", checkoutID)
			if getErr != nil {
				return nil, false, errors.Join(err, getErr)
			}

			return existing, false, nil
		}

		return nil, false, err
	}

	return order, created, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getOrder(ctx context.Context, db queryRower, where string, arg any) (*domain.Order, error) {
	query := `
		SELECT o.id, o.checkout_id, o.total_cents, o.currency, o.customer_email, c.package_name, c.quantity, o.created_at
		FROM orders o
		JOIN checkouts c ON c.id = o.checkout_id
		WHERE ` + where

	var order domain.Order

	err := db.QueryRow(ctx, query, arg).Scan(
		&order.ID,
		&order.CheckoutID,
		&order.TotalCents,
		&order.Currency,
		&order.CustomerEmail,
		&order.PackageName,
		&order.Quantity,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &order, nil
}
