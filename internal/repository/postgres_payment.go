package repository

import (
	"context"
	"errors"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func (p *PostgresPaymentRepository) GetByBookingId(ctx context.Context, bookingID int) (*domain.Payment, error) {
	query := `SELECT booking_id, amount, paid_at FROM payments WHERE booking_id = $1`

	var payment domain.Payment

	err := p.db.QueryRow(ctx, query, bookingID).Scan(&payment.BookingID, &payment.Amount, &payment.PaidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &payment, nil
}
