package repository

import (
	"context"
	"strings"
	"time"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// likeEscaper neutralizes LIKE pattern metacharacters so a search term
// only ever matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresReportRepository serves the read-only reporting projections. None
// of its queries mutate state.
type PostgresReportRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReportRepository(db *pgxpool.Pool) *PostgresReportRepository {
	return &PostgresReportRepository{
		db: db,
	}
}

func (p *PostgresReportRepository) GetTheatersPlayingShow(
	ctx context.Context,
	cinemaID, showID int) ([]domain.Theater, error) {

	query := `
		SELECT t.id, t.cinema_id, t.name
		FROM theaters t
		JOIN plays p ON p.theater_id = t.id
		WHERE t.cinema_id = $1 AND p.show_id = $2
		ORDER BY t.name
	`

	rows, err := p.db.Query(ctx, query, cinemaID, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	theaters := make([]domain.Theater, 0)

	for rows.Next() {
		var theater domain.Theater

		err = rows.Scan(&theater.ID, &theater.CinemaID, &theater.Name)
		if err != nil {
			return nil, err
		}

		theaters = append(theaters, theater)
	}

	return theaters, rows.Err()
}

func (p *PostgresReportRepository) GetShowsStartingAt(
	ctx context.Context,
	startsAt time.Time) ([]domain.ShowListing, error) {

	query := `
		SELECT s.id, m.title, s.show_date, s.start_time, s.end_time
		FROM shows s
		JOIN movies m ON m.id = s.movie_id
		WHERE s.start_time = $1
		ORDER BY m.title
	`

	rows, err := p.db.Query(ctx, query, startsAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]domain.ShowListing, 0)

	for rows.Next() {
		var listing domain.ShowListing

		err = rows.Scan(&listing.ShowID, &listing.MovieTitle, &listing.Date, &listing.StartTime, &listing.EndTime)
		if err != nil {
			return nil, err
		}

		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

func (p *PostgresReportRepository) SearchMovieTitles(
	ctx context.Context,
	term string,
	releasedAfter int) ([]string, error) {

	query := `
		SELECT title
		FROM movies
		WHERE title ILIKE '%' || $1 || '%' ESCAPE '\'
			AND EXTRACT(YEAR FROM release_date) > $2
		ORDER BY title
	`

	rows, err := p.db.Query(ctx, query, likeEscaper.Replace(term), releasedAfter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	titles := make([]string, 0)

	for rows.Next() {
		var title string

		if err = rows.Scan(&title); err != nil {
			return nil, err
		}

		titles = append(titles, title)
	}

	return titles, rows.Err()
}

func (p *PostgresReportRepository) GetUsersWithPendingBookings(ctx context.Context) ([]domain.UserSummary, error) {
	query := `
		SELECT DISTINCT u.first_name, u.last_name, u.email
		FROM users u
		JOIN bookings b ON b.user_email = u.email
		WHERE b.status = $1
		ORDER BY u.email
	`

	rows, err := p.db.Query(ctx, query, domain.BookingStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserSummary, 0)

	for rows.Next() {
		var user domain.UserSummary

		err = rows.Scan(&user.FirstName, &user.LastName, &user.Email)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, rows.Err()
}

func (p *PostgresReportRepository) GetShowingsOfMovieAtCinema(
	ctx context.Context,
	movieTitle, cinemaName string,
	from, to time.Time) ([]domain.ShowingInfo, error) {

	query := `
		SELECT m.title, m.duration, s.show_date, s.start_time
		FROM shows s
		JOIN movies m ON m.id = s.movie_id
		JOIN plays p ON p.show_id = s.id
		JOIN theaters t ON t.id = p.theater_id
		JOIN cinemas c ON c.id = t.cinema_id
		WHERE m.title = $1
			AND c.name = $2
			AND s.show_date BETWEEN $3 AND $4
		ORDER BY s.start_time
	`

	rows, err := p.db.Query(ctx, query, movieTitle, cinemaName, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showings := make([]domain.ShowingInfo, 0)

	for rows.Next() {
		var showing domain.ShowingInfo

		err = rows.Scan(&showing.MovieTitle, &showing.Duration, &showing.Date, &showing.StartTime)
		if err != nil {
			return nil, err
		}

		showings = append(showings, showing)
	}

	return showings, rows.Err()
}

func (p *PostgresReportRepository) GetBookingsOfUser(ctx context.Context, email string) ([]domain.BookingLine, error) {
	query := `
		SELECT
			b.id,
			m.title,
			s.show_date,
			s.start_time,
			t.name,
			array_agg(cs.seat_number ORDER BY cs.seat_number)
		FROM bookings b
		JOIN shows s ON s.id = b.show_id
		JOIN movies m ON m.id = s.movie_id
		JOIN plays p ON p.show_id = s.id
		JOIN theaters t ON t.id = p.theater_id
		JOIN show_seats ss ON ss.booking_id = b.id
		JOIN cinema_seats cs ON cs.id = ss.cinema_seat_id
		WHERE b.user_email = $1
		GROUP BY b.id, m.title, s.show_date, s.start_time, t.name
		ORDER BY b.id
	`

	rows, err := p.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]domain.BookingLine, 0)

	for rows.Next() {
		var line domain.BookingLine

		err = rows.Scan(
			&line.BookingID,
			&line.MovieTitle,
			&line.ShowDate,
			&line.StartTime,
			&line.TheaterName,
			&line.SeatNumbers,
		)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return lines, rows.Err()
}
