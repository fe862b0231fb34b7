package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Payment exists only while its booking is paid and not cancelled. It is
// created inside the booking transaction and removed by cancellation.
type Payment struct {
	BookingID int
	Amount    decimal.Decimal
	PaidAt    time.Time
}

type PaymentRepository interface {
	GetByBookingId(ctx context.Context, bookingID int) (*Payment, error)
}
