package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type SeatType string

const (
	SeatTypeStandard SeatType = "Standard"
	SeatTypePremium  SeatType = "Premium"
	SeatTypeRecliner SeatType = "Recliner"
)

var seatBasePrices = map[SeatType]decimal.Decimal{
	SeatTypeStandard: decimal.NewFromInt(10),
	SeatTypePremium:  decimal.NewFromInt(15),
	SeatTypeRecliner: decimal.NewFromInt(20),
}

// BasePrice returns the fixed price tier for the seat type. Unknown types
// price as Standard.
func (t SeatType) BasePrice() decimal.Decimal {
	price, ok := seatBasePrices[t]
	if !ok {
		return seatBasePrices[SeatTypeStandard]
	}

	return price
}

func (t SeatType) Valid() bool {
	_, ok := seatBasePrices[t]
	return ok
}

// CinemaSeat is a physical, theater-scoped seat. Immutable once created.
type CinemaSeat struct {
	ID         int
	TheaterID  int
	SeatNumber int
	Type       SeatType
}

// ShowSeat assigns one cinema seat to one booking for one show. The
// (ShowID, CinemaSeatID) pair is unique across all bookings.
type ShowSeat struct {
	ID           int
	ShowID       int
	CinemaSeatID int
	BookingID    int
	Price        decimal.Decimal
}

type SeatRepository interface {
	GetFreeSeatsByShow(ctx context.Context, showID int) ([]CinemaSeat, error)
	Allocate(ctx context.Context, showID, cinemaSeatID, bookingID int) (*ShowSeat, error)
	Swap(ctx context.Context, bookingID, oldCinemaSeatID, newCinemaSeatID int) error
}
