package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// CreateWithSeats creates the booking and all of its seat assignments as one
// transaction. Seats are inserted in ascending seat id order so concurrent
// bookings touching the same seats lock rows in the same order. Already
// assigned seats surface as a SeatConflictError and nothing is persisted.
func (p *PostgresBookingRepository) CreateWithSeats(
	ctx context.Context,
	booking *domain.Booking,
	cinemaSeatIDs []int) error {

	seatIDs := make([]int, len(cinemaSeatIDs))
	copy(seatIDs, cinemaSeatIDs)
	sort.Ints(seatIDs)

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		seatTypes, err := seatTypesForShow(ctx, tx, booking.ShowID, seatIDs)
		if err != nil {
			return err
		}

		taken, err := assignedSeats(ctx, tx, booking.ShowID, seatIDs)
		if err != nil {
			return err
		}

		if len(taken) > 0 {
			return &domain.SeatConflictError{ShowID: booking.ShowID, SeatIDs: taken}
		}

		booking.Reference = uuid.New()
		booking.SeatCount = len(seatIDs)

		query := `
			INSERT INTO bookings (reference, user_email, show_id, seat_count, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.Reference,
			booking.UserEmail,
			booking.ShowID,
			booking.SeatCount,
			booking.Status,
		).Scan(&booking.ID, &booking.CreatedAt)

		if err != nil {
			return err
		}

		query = `
			INSERT INTO show_seats (show_id, cinema_seat_id, booking_id, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		booking.Seats = make([]domain.ShowSeat, 0, len(seatIDs))

		for _, seatID := range seatIDs {
			showSeat := domain.ShowSeat{
				ShowID:       booking.ShowID,
				CinemaSeatID: seatID,
				BookingID:    booking.ID,
				Price:        seatTypes[seatID].BasePrice(),
			}

			err = tx.QueryRow(ctx, query, showSeat.ShowID, showSeat.CinemaSeatID, showSeat.BookingID, showSeat.Price).
				Scan(&showSeat.ID)

			if err != nil {
				if isUniqueViolation(err) {
					return &domain.SeatConflictError{ShowID: booking.ShowID, SeatIDs: []int{seatID}}
				}

				return err
			}

			booking.Seats = append(booking.Seats, showSeat)
		}

		if booking.Status == domain.BookingStatusPaid {
			_, err = tx.Exec(
				ctx,
				`INSERT INTO payments (booking_id, amount) VALUES ($1, $2)`,
				booking.ID,
				booking.Total(),
			)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, bookingID int) (*domain.Booking, error) {
	query := `
		SELECT id, reference, user_email, COALESCE(show_id, 0), seat_count, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, bookingID).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserEmail,
		&booking.ShowID,
		&booking.SeatCount,
		&booking.Status,
		&booking.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	query = `
		SELECT id, show_id, cinema_seat_id, booking_id, price
		FROM show_seats
		WHERE booking_id = $1
		ORDER BY cinema_seat_id
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var seat domain.ShowSeat

		err = rows.Scan(&seat.ID, &seat.ShowID, &seat.CinemaSeatID, &seat.BookingID, &seat.Price)
		if err != nil {
			return nil, err
		}

		booking.Seats = append(booking.Seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &booking, nil
}

// Cancel is idempotent: the first call removes the payment and moves the
// booking to Cancelled, later calls change nothing.
func (p *PostgresBookingRepository) Cancel(ctx context.Context, bookingID int) (bool, error) {
	changed := false

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var status domain.BookingStatus

		err := tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, bookingID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if status == domain.BookingStatusCancelled {
			return nil
		}

		_, err = tx.Exec(ctx, `DELETE FROM payments WHERE booking_id = $1`, bookingID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(
			ctx,
			`UPDATE bookings SET status = $1 WHERE id = $2`,
			domain.BookingStatusCancelled,
			bookingID,
		)
		if err != nil {
			return err
		}

		changed = true

		return nil
	})

	return changed, err
}

func (p *PostgresBookingRepository) CancelAllPending(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(
		ctx,
		`UPDATE bookings SET status = $1 WHERE status = $2`,
		domain.BookingStatusCancelled,
		domain.BookingStatusPending,
	)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// PurgeCancelled hard-deletes cancelled bookings and whatever still hangs off
// them, in dependency order.
func (p *PostgresBookingRepository) PurgeCancelled(ctx context.Context) (int64, error) {
	var purged int64

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM payments
			WHERE booking_id IN (SELECT id FROM bookings WHERE status = $1)`,
			domain.BookingStatusCancelled,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM show_seats
			WHERE booking_id IN (SELECT id FROM bookings WHERE status = $1)`,
			domain.BookingStatusCancelled,
		)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM bookings WHERE status = $1`, domain.BookingStatusCancelled)
		if err != nil {
			return err
		}

		purged = tag.RowsAffected()

		return nil
	})

	if err != nil {
		return 0, err
	}

	return purged, nil
}

// RemoveShowsOnDateAndCinema removes every show on the date playing in a
// theater of the named cinema. Seat assignments go first, then the play
// mappings, then the shows; bookings that referenced a removed show are
// cancelled with their payments deleted, and detached from the show.
func (p *PostgresBookingRepository) RemoveShowsOnDateAndCinema(
	ctx context.Context,
	date time.Time,
	cinemaName string) (*domain.CascadeResult, error) {

	var result domain.CascadeResult

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT s.id
			FROM shows s
			JOIN plays p ON p.show_id = s.id
			JOIN theaters t ON t.id = p.theater_id
			JOIN cinemas c ON c.id = t.cinema_id
			WHERE s.show_date = $1 AND c.name = $2
		`

		rows, err := tx.Query(ctx, query, date, cinemaName)
		if err != nil {
			return err
		}

		showIDs, err := pgx.CollectRows(rows, pgx.RowTo[int])
		if err != nil {
			return err
		}

		if len(showIDs) == 0 {
			return nil
		}

		tag, err := tx.Exec(ctx, `DELETE FROM show_seats WHERE show_id = ANY($1)`, showIDs)
		if err != nil {
			return err
		}
		result.SeatsReleased = tag.RowsAffected()

		_, err = tx.Exec(ctx, `
			DELETE FROM payments
			WHERE booking_id IN (SELECT id FROM bookings WHERE show_id = ANY($1))`,
			showIDs,
		)
		if err != nil {
			return err
		}

		tag, err = tx.Exec(ctx, `
			UPDATE bookings
			SET status = $1, show_id = NULL
			WHERE show_id = ANY($2)`,
			domain.BookingStatusCancelled,
			showIDs,
		)
		if err != nil {
			return err
		}
		result.BookingsCancelled = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM plays WHERE show_id = ANY($1)`, showIDs)
		if err != nil {
			return err
		}
		result.PlaysRemoved = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM shows WHERE id = ANY($1)`, showIDs)
		if err != nil {
			return err
		}
		result.ShowsRemoved = tag.RowsAffected()

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &result, nil
}

// seatTypesForShow resolves the types of the requested seats and verifies
// each belongs to the theater the show plays in.
func seatTypesForShow(
	ctx context.Context,
	tx pgx.Tx,
	showID int,
	cinemaSeatIDs []int) (map[int]domain.SeatType, error) {

	query := `
		SELECT cs.id, cs.seat_type
		FROM cinema_seats cs
		JOIN plays p ON p.theater_id = cs.theater_id
		WHERE p.show_id = $1 AND cs.id = ANY($2)
	`

	rows, err := tx.Query(ctx, query, showID, cinemaSeatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatTypes := make(map[int]domain.SeatType, len(cinemaSeatIDs))

	for rows.Next() {
		var (
			id       int
			seatType domain.SeatType
		)

		if err = rows.Scan(&id, &seatType); err != nil {
			return nil, err
		}

		seatTypes[id] = seatType
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range cinemaSeatIDs {
		if _, ok := seatTypes[id]; !ok {
			return nil, domain.ErrSeatWrongTheater
		}
	}

	return seatTypes, nil
}

// assignedSeats returns which of the requested seats are already taken for
// the show, locking the conflicting rows for the rest of the transaction.
func assignedSeats(ctx context.Context, tx pgx.Tx, showID int, cinemaSeatIDs []int) ([]int, error) {
	query := `
		SELECT cinema_seat_id
		FROM show_seats
		WHERE show_id = $1 AND cinema_seat_id = ANY($2)
		ORDER BY cinema_seat_id
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, showID, cinemaSeatIDs)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[int])
}
