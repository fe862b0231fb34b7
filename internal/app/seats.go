package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Free-seat sets are cached briefly; allocation itself is transactionally
// guarded, so a stale read only costs the caller a Conflict and a retry.
const freeSeatCacheTTL = 30 * time.Second

func freeSeatCacheKey(showID int) string {
	return fmt.Sprintf("free_seats:%d", showID)
}

type CinemaSeatResponse struct {
	Id         int             `json:"id"`
	SeatNumber int             `json:"seatNumber"`
	Type       string          `json:"type"`
	Price      decimal.Decimal `json:"price"`
}

type FreeSeatsResponse struct {
	ShowId int                  `json:"showId"`
	Seats  []CinemaSeatResponse `json:"seats"`
}

func (app *Application) GetFreeSeatsHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showID, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.catalogRepo.GetShowById(r.Context(), showID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, ok := app.cachedFreeSeats(r.Context(), showID)
	if !ok {
		seats, err = app.seatRepo.GetFreeSeatsByShow(r.Context(), showID)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		app.cacheFreeSeats(r.Context(), showID, seats)
	} else {
		logger.Debug("free seats served from cache", "show_id", showID)
	}

	resp := FreeSeatsResponse{
		ShowId: showID,
		Seats:  make([]CinemaSeatResponse, len(seats)),
	}

	for i, seat := range seats {
		resp.Seats[i] = CinemaSeatResponse{
			Id:         seat.ID,
			SeatNumber: seat.SeatNumber,
			Type:       string(seat.Type),
			Price:      seat.Type.BasePrice(),
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type AllocateSeatRequest struct {
	CinemaSeatID int `json:"cinemaSeatId" validate:"required,gt=0"`
}

func (app *Application) AllocateSeatHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readIDParam(r, "bookingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input AllocateSeatRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetById(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	showSeat, err := app.seatRepo.Allocate(r.Context(), booking.ShowID, input.CinemaSeatID, bookingID)
	if err != nil {
		var conflictErr *domain.SeatConflictError

		switch {
		case errors.As(err, &conflictErr):
			app.seatConflictResponse(w, r, conflictErr)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrSeatWrongTheater):
			app.policyViolationResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateFreeSeatCache(r.Context(), booking.ShowID)

	resp := ShowSeatResponse{
		Id:           showSeat.ID,
		CinemaSeatId: showSeat.CinemaSeatID,
		Price:        showSeat.Price,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type SwapSeatRequest struct {
	OldCinemaSeatID int `json:"oldCinemaSeatId" validate:"required,gt=0"`
	NewCinemaSeatID int `json:"newCinemaSeatId" validate:"required,gt=0"`
}

func (app *Application) SwapSeatHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readIDParam(r, "bookingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input SwapSeatRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetById(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.seatRepo.Swap(r.Context(), bookingID, input.OldCinemaSeatID, input.NewCinemaSeatID)
	if err != nil {
		var conflictErr *domain.SeatConflictError

		switch {
		case errors.As(err, &conflictErr):
			app.seatConflictResponse(w, r, conflictErr)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrSeatTypeMismatch), errors.Is(err, domain.ErrSeatWrongTheater):
			app.policyViolationResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateFreeSeatCache(r.Context(), booking.ShowID)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) cachedFreeSeats(ctx context.Context, showID int) ([]domain.CinemaSeat, bool) {
	payload, err := app.redis.Get(ctx, freeSeatCacheKey(showID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			app.logger.Warn("free seat cache read failed", "show_id", showID, "error", err)
		}

		return nil, false
	}

	var seats []domain.CinemaSeat
	if err := json.Unmarshal(payload, &seats); err != nil {
		return nil, false
	}

	return seats, true
}

func (app *Application) cacheFreeSeats(ctx context.Context, showID int, seats []domain.CinemaSeat) {
	payload, err := json.Marshal(seats)
	if err != nil {
		return
	}

	err = app.redis.Set(ctx, freeSeatCacheKey(showID), payload, freeSeatCacheTTL).Err()
	if err != nil {
		app.logger.Warn("free seat cache write failed", "show_id", showID, "error", err)
	}
}

func (app *Application) invalidateFreeSeatCache(ctx context.Context, showID int) {
	err := app.redis.Del(ctx, freeSeatCacheKey(showID)).Err()
	if err != nil {
		app.logger.Warn("free seat cache invalidation failed", "show_id", showID, "error", err)
	}
}
