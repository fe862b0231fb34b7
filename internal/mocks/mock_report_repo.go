package mocks

import (
	"context"
	"time"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReportRepo struct {
	mock.Mock
	domain.ReportRepository
}

func (m *MockReportRepo) GetTheatersPlayingShow(ctx context.Context, cinemaID, showID int) ([]domain.Theater, error) {
	args := m.Called(ctx, cinemaID, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Theater), args.Error(1)
}

func (m *MockReportRepo) GetShowsStartingAt(ctx context.Context, startsAt time.Time) ([]domain.ShowListing, error) {
	args := m.Called(ctx, startsAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShowListing), args.Error(1)
}

func (m *MockReportRepo) SearchMovieTitles(ctx context.Context, term string, releasedAfter int) ([]string, error) {
	args := m.Called(ctx, term, releasedAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReportRepo) GetUsersWithPendingBookings(ctx context.Context) ([]domain.UserSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserSummary), args.Error(1)
}

func (m *MockReportRepo) GetShowingsOfMovieAtCinema(
	ctx context.Context,
	movieTitle, cinemaName string,
	from, to time.Time) ([]domain.ShowingInfo, error) {

	args := m.Called(ctx, movieTitle, cinemaName, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShowingInfo), args.Error(1)
}

func (m *MockReportRepo) GetBookingsOfUser(ctx context.Context, email string) ([]domain.BookingLine, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingLine), args.Error(1)
}
