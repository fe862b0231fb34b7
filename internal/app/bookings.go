package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	UserEmail string `json:"userEmail" validate:"required,email"`
	ShowID    int    `json:"showId" validate:"required,gt=0"`
	SeatIDs   []int  `json:"seatIds" validate:"required,min=1,unique,dive,gt=0"`
}

type ShowSeatResponse struct {
	Id           int             `json:"id"`
	CinemaSeatId int             `json:"cinemaSeatId"`
	Price        decimal.Decimal `json:"price"`
}

type BookingResponse struct {
	Id        int                `json:"id"`
	Reference uuid.UUID          `json:"reference"`
	UserEmail string             `json:"userEmail"`
	ShowId    int                `json:"showId"`
	SeatCount int                `json:"seatCount"`
	Status    string             `json:"status"`
	Total     decimal.Decimal    `json:"total"`
	CreatedAt time.Time          `json:"createdAt"`
	Seats     []ShowSeatResponse `json:"seats"`
}

type SeatConflictResponse struct {
	Message string `json:"message"`
	SeatIds []int  `json:"seatIds"`
}

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	user, err := app.userRepo.GetByEmail(r.Context(), input.UserEmail)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("user not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	_, err = app.catalogRepo.GetShowById(r.Context(), input.ShowID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("show not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	_, err = app.catalogRepo.GetTheaterByShow(r.Context(), input.ShowID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("show is not assigned to a theater"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	booking := domain.Booking{
		UserEmail: input.UserEmail,
		ShowID:    input.ShowID,
		Status:    app.defaultBookingStatus(),
	}

	err = app.bookingRepo.CreateWithSeats(r.Context(), &booking, input.SeatIDs)
	if err != nil {
		var conflictErr *domain.SeatConflictError

		switch {
		case errors.As(err, &conflictErr):
			logger.Warn("booking lost seat allocation race",
				"show_id", conflictErr.ShowID, "seat_ids", conflictErr.SeatIDs)
			app.seatConflictResponse(w, r, conflictErr)
		case errors.Is(err, domain.ErrSeatWrongTheater):
			app.policyViolationResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateFreeSeatCache(r.Context(), booking.ShowID)

	app.background(func() {
		data := map[string]any{
			"Reference": booking.Reference,
			"FirstName": user.FirstName,
			"SeatCount": booking.SeatCount,
			"Total":     booking.Total(),
		}

		err := app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send booking confirmation", "error", err)
		}
	})

	resp := toBookingResponse(&booking)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type PaymentResponse struct {
	Amount decimal.Decimal `json:"amount"`
	PaidAt time.Time       `json:"paidAt"`
}

type BookingDetailResponse struct {
	BookingResponse
	Payment *PaymentResponse `json:"payment,omitempty"`
}

func (app *Application) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
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

	resp := BookingDetailResponse{
		BookingResponse: toBookingResponse(booking),
	}

	payment, err := app.paymentRepo.GetByBookingId(r.Context(), bookingID)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		app.serverErrorResponse(w, r, err)
		return
	}

	if payment != nil {
		resp.Payment = &PaymentResponse{
			Amount: payment.Amount,
			PaidAt: payment.PaidAt,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) seatConflictResponse(w http.ResponseWriter, r *http.Request, conflictErr *domain.SeatConflictError) {
	resp := SeatConflictResponse{
		Message: "Some of the selected seats are already booked for this show",
		SeatIds: conflictErr.SeatIDs,
	}

	err := app.writeJSON(w, http.StatusConflict, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	seats := make([]ShowSeatResponse, len(booking.Seats))
	for i, seat := range booking.Seats {
		seats[i] = ShowSeatResponse{
			Id:           seat.ID,
			CinemaSeatId: seat.CinemaSeatID,
			Price:        seat.Price,
		}
	}

	return BookingResponse{
		Id:        booking.ID,
		Reference: booking.Reference,
		UserEmail: booking.UserEmail,
		ShowId:    booking.ShowID,
		SeatCount: booking.SeatCount,
		Status:    string(booking.Status),
		Total:     booking.Total(),
		CreatedAt: booking.CreatedAt,
		Seats:     seats,
	}
}
