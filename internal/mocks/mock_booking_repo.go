package mocks

import (
	"context"
	"time"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) CreateWithSeats(ctx context.Context, booking *domain.Booking, cinemaSeatIDs []int) error {
	args := m.Called(ctx, booking, cinemaSeatIDs)
	return args.Error(0)
}

func (m *MockBookingRepo) GetById(ctx context.Context, bookingID int) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, bookingID int) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) CancelAllPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepo) PurgeCancelled(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepo) RemoveShowsOnDateAndCinema(
	ctx context.Context,
	date time.Time,
	cinemaName string) (*domain.CascadeResult, error) {

	args := m.Called(ctx, date, cinemaName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CascadeResult), args.Error(1)
}
