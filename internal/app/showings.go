package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	appvalidator "github.com/ahernandez25/CS166-Phase3/internal/validator"
)

type CreateShowingRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	ReleaseDate string `json:"releaseDate" validate:"required,date"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
	Language    string `json:"language" validate:"omitempty,max=10"`
	Genre       string `json:"genre" validate:"omitempty,max=50"`
	ShowDate    string `json:"showDate" validate:"required,date"`
	StartTime   string `json:"startTime" validate:"required,clock"`
	EndTime     string `json:"endTime" validate:"required,clock"`
	TheaterID   int    `json:"theaterId" validate:"required,gt=0"`
}

type ShowingResponse struct {
	MovieId   int       `json:"movieId"`
	ShowId    int       `json:"showId"`
	TheaterId int       `json:"theaterId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// CreateShowingHandler registers a new movie showing in an existing theater:
// the movie, its show and the play mapping are created as one unit.
func (app *Application) CreateShowingHandler(w http.ResponseWriter, r *http.Request) {
	var input CreateShowingRequest

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

	_, err = app.catalogRepo.GetTheaterById(r.Context(), input.TheaterID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, errors.New("theater not found"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	releaseDate, _ := time.Parse(appvalidator.DateLayout, input.ReleaseDate)
	showDate, _ := time.Parse(appvalidator.DateLayout, input.ShowDate)

	startTime, err := combineDateAndClock(showDate, input.StartTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	endTime, err := combineDateAndClock(showDate, input.EndTime)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Shows ending past midnight run into the next day.
	if !endTime.After(startTime) {
		endTime = endTime.AddDate(0, 0, 1)
	}

	movie := domain.Movie{
		Title:       input.Title,
		ReleaseDate: releaseDate,
		Duration:    input.Duration,
		Language:    input.Language,
		Genre:       input.Genre,
	}

	show := domain.Show{
		Date:      showDate,
		StartTime: startTime,
		EndTime:   endTime,
	}

	err = app.catalogRepo.CreateShowing(r.Context(), &movie, &show, input.TheaterID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ShowingResponse{
		MovieId:   movie.ID,
		ShowId:    show.ID,
		TheaterId: input.TheaterID,
		StartTime: show.StartTime,
		EndTime:   show.EndTime,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func combineDateAndClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(appvalidator.TimeLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", clock)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
