package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

// Routes is the operation dispatch table: every operation the core exposes
// is a named route with its own handler, testable without any menu loop.
func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-ticketing-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.CreateUserHandler)

	r.Post("/showings", app.CreateShowingHandler)

	r.Get("/shows/{showID}/seats", app.GetFreeSeatsHandler)

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", app.CreateBookingHandler)
		r.Post("/pending/cancel", app.CancelAllPendingHandler)
		r.Get("/pending/users", app.GetPendingBookingUsersHandler)
		r.Delete("/cancelled", app.PurgeCancelledHandler)

		r.Route("/{bookingID}", func(r chi.Router) {
			r.Get("/", app.GetBookingHandler)
			r.Post("/cancel", app.CancelBookingHandler)
			r.Delete("/payment", app.RemovePaymentHandler)
			r.Post("/seats", app.AllocateSeatHandler)
			r.Patch("/seats", app.SwapSeatHandler)
		})
	})

	r.Delete("/shows", app.RemoveShowsHandler)
	r.Get("/shows", app.GetShowsStartingAtHandler)

	r.Get("/movies", app.SearchMovieTitlesHandler)

	r.Get("/cinemas/{cinemaID}/shows/{showID}/theaters", app.GetTheatersPlayingShowHandler)
	r.Get("/showings", app.GetShowingsOfMovieHandler)

	r.Get("/users/{email}/bookings", app.GetUserBookingsHandler)

	return r
}
