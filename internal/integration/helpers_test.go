package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"reference": {},
	"paidAt":    {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func jsonBody(t testing.TB, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanValue(actual)

	var expected any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore nondeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanValue(v any) {
	switch typed := v.(type) {
	case map[string]any:
		for k := range typed {
			if _, ok := keysToIgnore[k]; ok {
				delete(typed, k)
				continue
			}
			cleanValue(typed[k])
		}
	case []any:
		for _, item := range typed {
			cleanValue(item)
		}
	}
}

// resetDatabase wipes all state and reseeds the base catalog: one cinema
// with two theaters, four seats in the first theater and one in the second,
// one movie with a show in each theater, and two users.
func resetDatabase(t testing.TB, app *TestApp) {
	t.Helper()

	ctx := context.Background()

	require.NoError(t, app.Redis.FlushAll(ctx).Err())

	_, err := app.DB.Exec(ctx, `
		TRUNCATE show_seats, payments, bookings, plays, shows, movies,
			cinema_seats, theaters, cinemas, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("Pass123!@#"), 12)
	require.NoError(t, err)

	_, err = app.DB.Exec(ctx, `
		INSERT INTO users (email, first_name, last_name, password_hash) VALUES
			('alice@example.com', 'Alice', 'Cooper', $1),
			('bob@example.com', 'Bob', 'Dylan', $1)`, hash)
	require.NoError(t, err)

	_, err = app.DB.Exec(ctx, `
		INSERT INTO cinemas (id, name) VALUES (1, 'Galaxy');

		INSERT INTO theaters (id, cinema_id, name) VALUES
			(1, 1, 'Theater 1'),
			(2, 1, 'Theater 2');

		INSERT INTO cinema_seats (id, theater_id, seat_number, seat_type) VALUES
			(1, 1, 1, 'Standard'),
			(2, 1, 2, 'Standard'),
			(3, 1, 3, 'Premium'),
			(4, 1, 4, 'Recliner'),
			(5, 2, 1, 'Standard');

		INSERT INTO movies (id, title, release_date, duration, language, genre) VALUES
			(1, 'Arrival', '2016-11-11', 116, 'en', 'Sci-Fi');

		INSERT INTO shows (id, movie_id, show_date, start_time, end_time) VALUES
			(1, 1, '2026-01-15', '2026-01-15 19:30', '2026-01-15 21:30'),
			(2, 1, '2026-01-15', '2026-01-15 13:00', '2026-01-15 15:00');

		INSERT INTO plays (show_id, theater_id) VALUES (1, 1), (2, 2);

		SELECT setval('cinemas_id_seq', 10);
		SELECT setval('theaters_id_seq', 10);
		SELECT setval('cinema_seats_id_seq', 100);
		SELECT setval('movies_id_seq', 10);
		SELECT setval('shows_id_seq', 10);`)
	require.NoError(t, err)
}

func createBooking(t testing.TB, app *TestApp, email string, showID int, seatIDs []int) int {
	t.Helper()

	body := jsonBody(t, map[string]any{
		"userEmail": email,
		"showId":    showID,
		"seatIds":   seatIDs,
	})

	req, err := prepareRequest(http.MethodPost, "/bookings", body, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "seeding booking failed: %s", rec.Body.String())

	var resp struct {
		Id int `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	return resp.Id
}

func bookingStatus(t testing.TB, app *TestApp, bookingID int) string {
	t.Helper()

	var status string
	err := app.DB.QueryRow(context.Background(),
		"SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&status)
	require.NoError(t, err)

	return status
}

func countRows(t testing.TB, app *TestApp, query string, args ...any) int {
	t.Helper()

	var count int
	err := app.DB.QueryRow(context.Background(), query, args...).Scan(&count)
	require.NoError(t, err)

	return count
}
