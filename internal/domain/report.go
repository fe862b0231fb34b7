package domain

import (
	"context"
	"time"
)

// Report rows are read-only projections over catalog and booking state.

type ShowListing struct {
	ShowID     int
	MovieTitle string
	Date       time.Time
	StartTime  time.Time
	EndTime    time.Time
}

type ShowingInfo struct {
	MovieTitle string
	Duration   int
	Date       time.Time
	StartTime  time.Time
}

type UserSummary struct {
	FirstName string
	LastName  string
	Email     string
}

type BookingLine struct {
	BookingID   int
	MovieTitle  string
	ShowDate    time.Time
	StartTime   time.Time
	TheaterName string
	SeatNumbers []int
}

type ReportRepository interface {
	GetTheatersPlayingShow(ctx context.Context, cinemaID, showID int) ([]Theater, error)
	GetShowsStartingAt(ctx context.Context, startsAt time.Time) ([]ShowListing, error)
	SearchMovieTitles(ctx context.Context, term string, releasedAfter int) ([]string, error)
	GetUsersWithPendingBookings(ctx context.Context) ([]UserSummary, error)
	GetShowingsOfMovieAtCinema(ctx context.Context, movieTitle, cinemaName string, from, to time.Time) ([]ShowingInfo, error)
	GetBookingsOfUser(ctx context.Context, email string) ([]BookingLine, error)
}
