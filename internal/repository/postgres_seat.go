package repository

import (
	"context"
	"errors"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

// GetFreeSeatsByShow returns the seats of the theater hosting the show minus
// the seats already assigned for that show.
func (p *PostgresSeatRepository) GetFreeSeatsByShow(ctx context.Context, showID int) ([]domain.CinemaSeat, error) {
	query := `
		SELECT cs.id, cs.theater_id, cs.seat_number, cs.seat_type
		FROM cinema_seats cs
		JOIN plays p ON p.theater_id = cs.theater_id
		WHERE p.show_id = $1
			AND NOT EXISTS (
				SELECT 1
				FROM show_seats ss
				WHERE ss.show_id = p.show_id AND ss.cinema_seat_id = cs.id
			)
		ORDER BY cs.seat_number
	`

	rows, err := p.db.Query(ctx, query, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.CinemaSeat, 0)

	for rows.Next() {
		var seat domain.CinemaSeat

		err = rows.Scan(&seat.ID, &seat.TheaterID, &seat.SeatNumber, &seat.Type)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

// Allocate assigns one more seat to an existing booking, bumping the
// booking's seat count and payment amount in the same transaction. The
// unique (show_id, cinema_seat_id) constraint decides races: the loser
// receives a SeatConflictError.
func (p *PostgresSeatRepository) Allocate(
	ctx context.Context,
	showID, cinemaSeatID, bookingID int) (*domain.ShowSeat, error) {

	var showSeat domain.ShowSeat

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var status domain.BookingStatus

		query := `SELECT status FROM bookings WHERE id = $1 AND show_id = $2 FOR UPDATE`

		err := tx.QueryRow(ctx, query, bookingID, showID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if status == domain.BookingStatusCancelled {
			return domain.ErrRecordNotFound
		}

		seatType, err := seatTypeInShowTheater(ctx, tx, showID, cinemaSeatID)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO show_seats (show_id, cinema_seat_id, booking_id, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		price := seatType.BasePrice()

		err = tx.QueryRow(ctx, query, showID, cinemaSeatID, bookingID, price).Scan(&showSeat.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return &domain.SeatConflictError{ShowID: showID, SeatIDs: []int{cinemaSeatID}}
			}

			return err
		}

		showSeat.ShowID = showID
		showSeat.CinemaSeatID = cinemaSeatID
		showSeat.BookingID = bookingID
		showSeat.Price = price

		_, err = tx.Exec(ctx, `UPDATE bookings SET seat_count = seat_count + 1 WHERE id = $1`, bookingID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE payments SET amount = amount + $1 WHERE booking_id = $2`, price, bookingID)

		return err
	})

	if err != nil {
		return nil, err
	}

	return &showSeat, nil
}

// Swap exchanges one of a booking's seats for a free seat of the same type.
// Either the assignment row points at the new seat afterwards or nothing
// changed.
func (p *PostgresSeatRepository) Swap(ctx context.Context, bookingID, oldCinemaSeatID, newCinemaSeatID int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT ss.id, ss.show_id, cs.seat_type, cs.theater_id
			FROM show_seats ss
			JOIN cinema_seats cs ON cs.id = ss.cinema_seat_id
			WHERE ss.booking_id = $1 AND ss.cinema_seat_id = $2
			FOR UPDATE OF ss
		`

		var (
			showSeatID int
			showID     int
			oldType    domain.SeatType
			theaterID  int
		)

		err := tx.QueryRow(ctx, query, bookingID, oldCinemaSeatID).Scan(&showSeatID, &showID, &oldType, &theaterID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		var (
			newType      domain.SeatType
			newTheaterID int
		)

		query = `SELECT seat_type, theater_id FROM cinema_seats WHERE id = $1`

		err = tx.QueryRow(ctx, query, newCinemaSeatID).Scan(&newType, &newTheaterID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if newTheaterID != theaterID {
			return domain.ErrSeatWrongTheater
		}

		if newType != oldType {
			return domain.ErrSeatTypeMismatch
		}

		_, err = tx.Exec(ctx, `UPDATE show_seats SET cinema_seat_id = $1 WHERE id = $2`, newCinemaSeatID, showSeatID)
		if err != nil && isUniqueViolation(err) {
			return &domain.SeatConflictError{ShowID: showID, SeatIDs: []int{newCinemaSeatID}}
		}

		return err
	})
}

// seatTypeInShowTheater resolves the seat's type and verifies it belongs to
// the theater the show plays in.
func seatTypeInShowTheater(ctx context.Context, tx pgx.Tx, showID, cinemaSeatID int) (domain.SeatType, error) {
	query := `
		SELECT cs.seat_type, cs.theater_id, p.theater_id
		FROM cinema_seats cs, plays p
		WHERE cs.id = $1 AND p.show_id = $2
	`

	var (
		seatType      domain.SeatType
		seatTheater   int
		playedTheater int
	)

	err := tx.QueryRow(ctx, query, cinemaSeatID, showID).Scan(&seatType, &seatTheater, &playedTheater)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrRecordNotFound
		}

		return "", err
	}

	if seatTheater != playedTheater {
		return "", domain.ErrSeatWrongTheater
	}

	return seatType, nil
}
