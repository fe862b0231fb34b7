package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/go-chi/chi/v5"
)

type TheaterResponse struct {
	Id       int    `json:"id"`
	CinemaId int    `json:"cinemaId"`
	Name     string `json:"name"`
}

func (app *Application) GetTheatersPlayingShowHandler(w http.ResponseWriter, r *http.Request) {
	cinemaID, err := app.readIDParam(r, "cinemaID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showID, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	theaters, err := app.reportRepo.GetTheatersPlayingShow(r.Context(), cinemaID, showID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]TheaterResponse, len(theaters))
	for i, theater := range theaters {
		resp[i] = TheaterResponse{
			Id:       theater.ID,
			CinemaId: theater.CinemaID,
			Name:     theater.Name,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type ShowListingResponse struct {
	ShowId     int       `json:"showId"`
	MovieTitle string    `json:"movieTitle"`
	Date       time.Time `json:"date"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
}

func (app *Application) GetShowsStartingAtHandler(w http.ResponseWriter, r *http.Request) {
	date, err := app.readDateQuery(r, "date")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	clock := r.URL.Query().Get("time")
	if clock == "" {
		app.badRequestResponse(w, r, errors.New("time parameter is required"))
		return
	}

	startsAt, err := combineDateAndClock(date, clock)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	listings, err := app.reportRepo.GetShowsStartingAt(r.Context(), startsAt)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]ShowListingResponse, len(listings))
	for i, listing := range listings {
		resp[i] = ShowListingResponse{
			ShowId:     listing.ShowID,
			MovieTitle: listing.MovieTitle,
			Date:       listing.Date,
			StartTime:  listing.StartTime,
			EndTime:    listing.EndTime,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type MovieTitlesResponse struct {
	Titles []string `json:"titles"`
}

func (app *Application) SearchMovieTitlesHandler(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("title")

	releasedAfter := 0
	if value := r.URL.Query().Get("releasedAfter"); value != "" {
		year, err := strconv.Atoi(value)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("releasedAfter must be a year"))
			return
		}

		releasedAfter = year
	}

	titles, err := app.reportRepo.SearchMovieTitles(r.Context(), term, releasedAfter)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, MovieTitlesResponse{Titles: titles}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type UserSummaryResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (app *Application) GetPendingBookingUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.reportRepo.GetUsersWithPendingBookings(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]UserSummaryResponse, len(users))
	for i, user := range users {
		resp[i] = UserSummaryResponse{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type ShowingInfoResponse struct {
	MovieTitle string    `json:"movieTitle"`
	Duration   int       `json:"duration"`
	Date       time.Time `json:"date"`
	StartTime  time.Time `json:"startTime"`
}

func (app *Application) GetShowingsOfMovieHandler(w http.ResponseWriter, r *http.Request) {
	movieTitle := r.URL.Query().Get("movie")
	if movieTitle == "" {
		app.badRequestResponse(w, r, errors.New("movie parameter is required"))
		return
	}

	cinemaName := r.URL.Query().Get("cinema")
	if cinemaName == "" {
		app.badRequestResponse(w, r, errors.New("cinema parameter is required"))
		return
	}

	from, err := app.readDateQuery(r, "from")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	to, err := app.readDateQuery(r, "to")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showings, err := app.reportRepo.GetShowingsOfMovieAtCinema(r.Context(), movieTitle, cinemaName, from, to)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]ShowingInfoResponse, len(showings))
	for i, showing := range showings {
		resp[i] = ShowingInfoResponse{
			MovieTitle: showing.MovieTitle,
			Duration:   showing.Duration,
			Date:       showing.Date,
			StartTime:  showing.StartTime,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type BookingLineResponse struct {
	BookingId   int       `json:"bookingId"`
	MovieTitle  string    `json:"movieTitle"`
	ShowDate    time.Time `json:"showDate"`
	StartTime   time.Time `json:"startTime"`
	TheaterName string    `json:"theaterName"`
	SeatNumbers []int     `json:"seatNumbers"`
}

func (app *Application) GetUserBookingsHandler(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	_, err := app.userRepo.GetByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("user not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	lines, err := app.reportRepo.GetBookingsOfUser(r.Context(), email)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]BookingLineResponse, len(lines))
	for i, line := range lines {
		resp[i] = BookingLineResponse{
			BookingId:   line.BookingID,
			MovieTitle:  line.MovieTitle,
			ShowDate:    line.ShowDate,
			StartTime:   line.StartTime,
			TheaterName: line.TheaterName,
			SeatNumbers: line.SeatNumbers,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
