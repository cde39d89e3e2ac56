package app

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/metinatakli/seat-inventory/api"
	"github.com/metinatakli/seat-inventory/internal/booking"
	"github.com/metinatakli/seat-inventory/internal/domain"
)

func (app *Application) BookSeats(w http.ResponseWriter, r *http.Request, showId api.ShowId) {
	logger := app.contextGetLogger(r)

	var input api.BookSeatsJSONRequestBody

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

	b, err := app.bookings.Book(r.Context(), showId, input.SeatIds, holdTimeout(input.HoldTimeoutSeconds))
	if err != nil {
		logger.Warn("booking rejected", "show_id", showId, "seats", input.SeatIds, "error", err)
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp, err := toApiBooking(*b)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) BulkBookSeats(w http.ResponseWriter, r *http.Request, showId api.ShowId) {
	var input api.BulkBookSeatsJSONRequestBody

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

	seatSets := make([][]string, len(input.Bookings))
	for i, item := range input.Bookings {
		seatSets[i] = item.SeatIds
	}

	results := app.bookings.BulkBook(r.Context(), showId, seatSets, holdTimeout(input.HoldTimeoutSeconds))

	resp := api.BulkBookResponse{
		Results: make([]api.BulkBookResult, len(results)),
	}

	for i, res := range results {
		resp.Results[i] = api.BulkBookResult{Index: i}

		if res.Err != nil {
			resp.Results[i].Error = app.toApiBulkError(r, res.Err)
			continue
		}

		apiBooking, err := toApiBooking(*res.Booking)
		if err != nil {
			resp.Results[i].Error = app.toApiBulkError(r, err)
			continue
		}
		resp.Results[i].Booking = &apiBooking
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBooking(w http.ResponseWriter, r *http.Request, bookingId api.BookingId) {
	b, err := app.bookings.Booking(bookingId.String())
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp, err := toApiBooking(b)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request, bookingId api.BookingId) {
	logger := app.contextGetLogger(r)

	err := app.bookings.Cancel(r.Context(), bookingId.String())
	if err != nil {
		logger.Warn("cancellation rejected", "booking_id", bookingId.String(), "error", err)
		app.bookingErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) BulkCancelBookings(w http.ResponseWriter, r *http.Request) {
	var input api.BulkCancelBookingsJSONRequestBody

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

	results := app.bookings.BulkCancel(r.Context(), input.BookingIds)

	resp := api.BulkCancelResponse{
		Results: make([]api.BulkCancelResult, len(results)),
	}

	for i, res := range results {
		resp.Results[i] = api.BulkCancelResult{
			BookingId: res.BookingID,
			Cancelled: res.Err == nil,
		}

		if res.Err != nil {
			resp.Results[i].Error = app.toApiBulkError(r, res.Err)
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toApiBulkError reports a per-entry failure. Internal errors are logged and
// replaced by a generic message.
func (app *Application) toApiBulkError(r *http.Request, err error) *api.BulkError {
	code := booking.FailureReason(err)

	message := err.Error()
	if code == "INTERNAL" {
		app.logError(r, err)
		message = ErrInternalServer
	}

	return &api.BulkError{
		Code:    code,
		Message: message,
	}
}

func toApiBooking(b domain.Booking) (api.BookingResponse, error) {
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return api.BookingResponse{}, fmt.Errorf("booking id %q is not a UUID: %w", b.ID, err)
	}

	return api.BookingResponse{
		Id:          id,
		ShowId:      b.ShowID,
		SeatIds:     b.SeatIDs,
		Price:       b.Price,
		Status:      api.BookingStatus(b.Status),
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
	}, nil
}
