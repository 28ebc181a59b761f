package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/esim-marketplace/internal/domain"
)

type PostgresESimRepository struct {
	db *pgxpool.Pool
}

func NewPostgresESimRepository(db *pgxpool.Pool) *PostgresESimRepository {
	return &PostgresESimRepository{
		db: db,
	}
}

// GetByICCID expects a normalized ICCID.
func (p *PostgresESimRepository) GetByICCID(ctx context.Context, iccid string) (*domain.ESim, error) {
	query := `
		SELECT iccid, smdp_address, matching_id, order_id, created_at
		FROM esims
		WHERE iccid = $1
	`

	var esim domain.ESim

	err := p.db.QueryRow(ctx, query, iccid).Scan(
		&esim.ICCID,
		&esim.SMDPAddress,
		&esim.MatchingID,
		&esim.OrderID,
		&esim.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &esim, nil
}
