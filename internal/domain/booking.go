package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusPaid      BookingStatus = "Paid"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusPaid, BookingStatusCancelled:
		return true
	}

	return false
}

type Booking struct {
	ID        int
	Reference uuid.UUID
	UserEmail string
	ShowID    int
	SeatCount int
	Status    BookingStatus
	CreatedAt time.Time
	Seats     []ShowSeat
}

func (b *Booking) Total() decimal.Decimal {
	total := decimal.Zero
	for _, seat := range b.Seats {
		total = total.Add(seat.Price)
	}

	return total
}

// CascadeResult summarizes a show-removal batch.
type CascadeResult struct {
	ShowsRemoved      int64
	SeatsReleased     int64
	PlaysRemoved      int64
	BookingsCancelled int64
}

type BookingRepository interface {
	// CreateWithSeats inserts the booking, one show_seats row per requested
	// seat, and a payment row when the booking is created Paid, all inside
	// one transaction. The booking's ID, reference, seats and timestamps are
	// populated on success.
	CreateWithSeats(ctx context.Context, booking *Booking, cinemaSeatIDs []int) error

	GetById(ctx context.Context, bookingID int) (*Booking, error)

	// Cancel removes the booking's payment (if any) and moves it to
	// Cancelled. Cancelling an already cancelled booking is a no-op; the
	// returned bool reports whether anything changed.
	Cancel(ctx context.Context, bookingID int) (bool, error)

	CancelAllPending(ctx context.Context) (int64, error)

	// PurgeCancelled hard-deletes cancelled bookings together with any
	// show_seats rows still referencing them.
	PurgeCancelled(ctx context.Context) (int64, error)

	// RemoveShowsOnDateAndCinema deletes every show on the given date playing
	// in a theater of the named cinema, in dependency order (show_seats,
	// plays, shows), and cancels the bookings that referenced those shows.
	RemoveShowsOnDateAndCinema(ctx context.Context, date time.Time, cinemaName string) (*CascadeResult, error)
}
