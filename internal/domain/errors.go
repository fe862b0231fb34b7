package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrSeatAlreadyBooked = errors.New("seat is already booked for this show")
	ErrSeatTypeMismatch  = errors.New("replacement seat must have the same seat type")
	ErrSeatWrongTheater  = errors.New("seat does not belong to the theater playing this show")
)

// SeatConflictError reports which seats lost an allocation race so the caller
// can re-fetch the free-seat set and pick again.
type SeatConflictError struct {
	ShowID  int
	SeatIDs []int
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats %v are already booked for show %d", e.SeatIDs, e.ShowID)
}

func (e *SeatConflictError) Unwrap() error {
	return ErrSeatAlreadyBooked
}
