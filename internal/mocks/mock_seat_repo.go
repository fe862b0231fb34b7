package mocks

import (
	"context"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) GetFreeSeatsByShow(ctx context.Context, showID int) ([]domain.CinemaSeat, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CinemaSeat), args.Error(1)
}

func (m *MockSeatRepo) Allocate(ctx context.Context, showID, cinemaSeatID, bookingID int) (*domain.ShowSeat, error) {
	args := m.Called(ctx, showID, cinemaSeatID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShowSeat), args.Error(1)
}

func (m *MockSeatRepo) Swap(ctx context.Context, bookingID, oldCinemaSeatID, newCinemaSeatID int) error {
	args := m.Called(ctx, bookingID, oldCinemaSeatID, newCinemaSeatID)
	return args.Error(0)
}
