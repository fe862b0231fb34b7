package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
)

type CancelBookingResponse struct {
	Id      int    `json:"id"`
	Status  string `json:"status"`
	Changed bool   `json:"changed"`
}

func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	bookingID, err := app.readIDParam(r, "bookingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
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

	changed, err := app.bookingRepo.Cancel(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if changed {
		logger.Info("booking cancelled", "booking_id", bookingID)

		app.background(func() {
			user, err := app.userRepo.GetByEmail(context.Background(), booking.UserEmail)
			if err != nil {
				app.logger.Error("failed to load user for cancellation notice", "error", err)
				return
			}

			data := map[string]any{
				"Reference": booking.Reference,
				"FirstName": user.FirstName,
			}

			err = app.mailer.Send(user.Email, "booking_cancelled.tmpl", data)
			if err != nil {
				app.logger.Error("failed to send cancellation notice", "error", err)
			}
		})
	}

	resp := CancelBookingResponse{
		Id:      bookingID,
		Status:  string(domain.BookingStatusCancelled),
		Changed: changed,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// RemovePaymentHandler removes a booking's payment. Per the booking state
// machine a booking without its payment is a cancelled booking, so this has
// the same effect as cancellation.
func (app *Application) RemovePaymentHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readIDParam(r, "bookingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	changed, err := app.bookingRepo.Cancel(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := CancelBookingResponse{
		Id:      bookingID,
		Status:  string(domain.BookingStatusCancelled),
		Changed: changed,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type SweepResponse struct {
	Affected int64 `json:"affected"`
}

func (app *Application) CancelAllPendingHandler(w http.ResponseWriter, r *http.Request) {
	count, err := app.bookingRepo.CancelAllPending(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("pending bookings cancelled", "count", count)

	err = app.writeJSON(w, http.StatusOK, SweepResponse{Affected: count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) PurgeCancelledHandler(w http.ResponseWriter, r *http.Request) {
	count, err := app.bookingRepo.PurgeCancelled(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("cancelled bookings purged", "count", count)

	err = app.writeJSON(w, http.StatusOK, SweepResponse{Affected: count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type RemoveShowsResponse struct {
	ShowsRemoved      int64 `json:"showsRemoved"`
	SeatsReleased     int64 `json:"seatsReleased"`
	PlaysRemoved      int64 `json:"playsRemoved"`
	BookingsCancelled int64 `json:"bookingsCancelled"`
}

func (app *Application) RemoveShowsHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	date, err := app.readDateQuery(r, "date")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cinemaName := r.URL.Query().Get("cinema")
	if cinemaName == "" {
		app.badRequestResponse(w, r, errors.New("cinema parameter is required"))
		return
	}

	_, err = app.catalogRepo.GetCinemaByName(r.Context(), cinemaName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("cinema not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	result, err := app.bookingRepo.RemoveShowsOnDateAndCinema(r.Context(), date, cinemaName)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("shows removed",
		"date", date.Format("2006-01-02"),
		"cinema", cinemaName,
		"shows", result.ShowsRemoved,
		"bookings_cancelled", result.BookingsCancelled,
	)

	resp := RemoveShowsResponse{
		ShowsRemoved:      result.ShowsRemoved,
		SeatsReleased:     result.SeatsReleased,
		PlaysRemoved:      result.PlaysRemoved,
		BookingsCancelled: result.BookingsCancelled,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
