package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/ahernandez25/CS166-Phase3/internal/mocks"
	"github.com/ahernandez25/CS166-Phase3/internal/validator"
)

type MockMailer struct {
	sendFunc func(recipient, template string, data any) error
}

func (m *MockMailer) Send(recipient, template string, data any) error {
	if m.sendFunc == nil {
		return nil
	}

	return m.sendFunc(recipient, template, data)
}

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config: Config{
			Env:     "test",
			Booking: BookingConfig{DefaultStatus: string(domain.BookingStatusPaid)},
		},
		validator:   validator.NewValidator(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		mailer:      &MockMailer{},
		userRepo:    &mocks.MockUserRepo{},
		catalogRepo: &mocks.MockCatalogRepo{},
		seatRepo:    &mocks.MockSeatRepo{},
		bookingRepo: &mocks.MockBookingRepo{},
		paymentRepo: &mocks.MockPaymentRepo{},
		reportRepo:  &mocks.MockReportRepo{},
		redis:       &mocks.MockRedisClient{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// executeRequest serves the request through the full router so URL
// parameters and middleware behave as in production.
func executeRequest(t *testing.T, app *Application, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}

		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	app.Routes().ServeHTTP(w, r)

	return w
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 || wantErrMessage == "" {
		return
	}

	var errorResp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if errorResp.Message != wantErrMessage {
		t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
	}
}

func checkValidationResponse(t *testing.T, w *httptest.ResponseRecorder, wantIssue string) {
	t.Helper()

	var validationResp ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
		t.Fatalf("Failed to decode validation error response: %v", err)
	}

	for _, vErr := range validationResp.ValidationErrors {
		if vErr.Issue == wantIssue {
			return
		}
	}

	t.Errorf("Expected validation error message '%s' not found in response", wantIssue)
}

func ptr[T any](v T) *T {
	return &v
}
