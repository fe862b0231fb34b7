package domain

import (
	"context"
	"time"
)

type Cinema struct {
	ID   int
	Name string
}

type Theater struct {
	ID       int
	CinemaID int
	Name     string
}

type Movie struct {
	ID          int
	Title       string
	ReleaseDate time.Time
	Duration    int
	Language    string
	Genre       string
}

type Show struct {
	ID        int
	MovieID   int
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

// Play assigns a show to the single theater it screens in.
type Play struct {
	ShowID    int
	TheaterID int
}

type CatalogRepository interface {
	GetShowById(ctx context.Context, showID int) (*Show, error)
	GetTheaterById(ctx context.Context, theaterID int) (*Theater, error)
	GetTheaterByShow(ctx context.Context, showID int) (*Theater, error)
	GetCinemaByName(ctx context.Context, name string) (*Cinema, error)
	CreateShowing(ctx context.Context, movie *Movie, show *Show, theaterID int) error
}
