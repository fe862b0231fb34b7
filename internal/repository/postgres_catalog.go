package repository

import (
	"context"
	"errors"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

func (p *PostgresCatalogRepository) GetShowById(ctx context.Context, showID int) (*domain.Show, error) {
	query := `
		SELECT id, movie_id, show_date, start_time, end_time
		FROM shows
		WHERE id = $1
	`

	var show domain.Show

	err := p.db.QueryRow(ctx, query, showID).Scan(
		&show.ID,
		&show.MovieID,
		&show.Date,
		&show.StartTime,
		&show.EndTime,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &show, nil
}

func (p *PostgresCatalogRepository) GetTheaterById(ctx context.Context, theaterID int) (*domain.Theater, error) {
	query := `SELECT id, cinema_id, name FROM theaters WHERE id = $1`

	var theater domain.Theater

	err := p.db.QueryRow(ctx, query, theaterID).Scan(&theater.ID, &theater.CinemaID, &theater.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &theater, nil
}

func (p *PostgresCatalogRepository) GetTheaterByShow(ctx context.Context, showID int) (*domain.Theater, error) {
	query := `
		SELECT t.id, t.cinema_id, t.name
		FROM theaters t
		JOIN plays p ON p.theater_id = t.id
		WHERE p.show_id = $1
	`

	var theater domain.Theater

	err := p.db.QueryRow(ctx, query, showID).Scan(
		&theater.ID,
		&theater.CinemaID,
		&theater.Name,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &theater, nil
}

func (p *PostgresCatalogRepository) GetCinemaByName(ctx context.Context, name string) (*domain.Cinema, error) {
	query := `SELECT id, name FROM cinemas WHERE name = $1`

	var cinema domain.Cinema

	err := p.db.QueryRow(ctx, query, name).Scan(&cinema.ID, &cinema.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &cinema, nil
}

// CreateShowing inserts a movie, its show and the play mapping to an
// existing theater as a single unit.
func (p *PostgresCatalogRepository) CreateShowing(
	ctx context.Context,
	movie *domain.Movie,
	show *domain.Show,
	theaterID int) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (title, release_date, duration, language, genre)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		err := tx.QueryRow(
			ctx,
			query,
			movie.Title,
			movie.ReleaseDate,
			movie.Duration,
			movie.Language,
			movie.Genre,
		).Scan(&movie.ID)

		if err != nil {
			return err
		}

		query = `
			INSERT INTO shows (movie_id, show_date, start_time, end_time)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		err = tx.QueryRow(ctx, query, movie.ID, show.Date, show.StartTime, show.EndTime).Scan(&show.ID)
		if err != nil {
			return err
		}

		show.MovieID = movie.ID

		_, err = tx.Exec(ctx, `INSERT INTO plays (show_id, theater_id) VALUES ($1, $2)`, show.ID, theaterID)

		return err
	})
}
