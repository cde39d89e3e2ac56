package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/seat-inventory/api"
	"github.com/metinatakli/seat-inventory/internal/booking"
	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/metinatakli/seat-inventory/internal/events"
	"github.com/metinatakli/seat-inventory/internal/inventory"
	"github.com/metinatakli/seat-inventory/internal/mocks"
	"github.com/metinatakli/seat-inventory/internal/pricing"
	"github.com/metinatakli/seat-inventory/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const testShowID = "show-1"

var testStartTime = time.Date(2026, 10, 20, 20, 0, 0, 0, time.UTC)

// testCatalog serves every show id listed in seats and reports the rest as
// not found.
func testCatalog(seats map[string][]string) *mocks.MockCatalog {
	return &mocks.MockCatalog{
		GetShowInventoryFunc: func(ctx context.Context, showID string) (*domain.ShowInventory, error) {
			ids, ok := seats[showID]
			if !ok {
				return nil, fmt.Errorf("show %s: %w", showID, domain.ErrRecordNotFound)
			}

			inv := newTestInventory(showID, ids...)
			return &inv, nil
		},
	}
}

func newTestInventory(showID string, seatIDs ...string) domain.ShowInventory {
	inv := domain.ShowInventory{
		Show: domain.Show{
			ID:         showID,
			MovieID:    "movie-1",
			MovieTitle: "Inception",
			Screen:     "Screen 1",
			City:       "Istanbul",
			StartTime:  testStartTime,
			BasePrice:  decimal.NewFromInt(10),
		},
	}

	for _, id := range seatIDs {
		inv.Seats = append(inv.Seats, domain.Seat{ID: id, Category: domain.SeatCategoryRegular})
	}

	return inv
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

// withCoordinator replaces the booking service of the application with a
// coordinator over a fresh store.
func withCoordinator(engine domain.PricingEngine, opts ...booking.Option) func(*Application) {
	return func(app *Application) {
		store := inventory.NewSeatStore()
		locks := inventory.NewLockManager()

		defaults := []booking.Option{
			booking.WithCatalog(testCatalog(map[string][]string{testShowID: {"A1", "A2", "A3", "B1"}})),
			booking.WithPublisher(events.NopPublisher{}),
			booking.WithLockTimeout(100 * time.Millisecond),
		}

		app.seats = store
		app.bookings = booking.NewCoordinator(store, locks, engine, app.logger, append(defaults, opts...)...)
	}
}

func newTestApplication(opts ...func(*Application)) *Application {
	openapi, err := newOpenAPIRouter()
	if err != nil {
		panic(err)
	}

	app := &Application{
		config:    Config{Env: "test"},
		validator: validator.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		openapi:   openapi,
	}

	withCoordinator(pricing.NewEngine(pricing.PolicyAdditive))(app)

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// serve runs the request through the full router.
func serve(t *testing.T, app *Application, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
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

func openTestShow(t *testing.T, app *Application) {
	t.Helper()

	w := serve(t, app, http.MethodPost, "/v1/shows/"+testShowID+"/inventory", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("open show: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func bookTestSeats(t *testing.T, app *Application, seatIDs ...string) api.BookingResponse {
	t.Helper()

	w := serve(t, app, http.MethodPost, "/v1/shows/"+testShowID+"/bookings", api.SeatSelectionRequest{SeatIds: seatIDs})
	if w.Code != http.StatusCreated {
		t.Fatalf("book seats: status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp api.BookingResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}

	return resp
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response %+v", wantErrMessage, validationResp.ValidationErrors)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

type MockBookingService struct {
	mock.Mock
	BookingService
}

func (m *MockBookingService) Book(ctx context.Context, showID string, seatIDs []string, holdTimeout time.Duration) (*domain.Booking, error) {
	args := m.Called(ctx, showID, seatIDs, holdTimeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) BulkCancel(ctx context.Context, bookingIDs []string) []booking.CancelResult {
	args := m.Called(ctx, bookingIDs)
	return args.Get(0).([]booking.CancelResult)
}

func ptr[T any](v T) *T {
	return &v
}
