package app

import (
	"net/http"

	"github.com/metinatakli/seat-inventory/api"
	"github.com/metinatakli/seat-inventory/internal/domain"
)

func (app *Application) HoldSeats(w http.ResponseWriter, r *http.Request, showId api.ShowId) {
	logger := app.contextGetLogger(r)

	var input api.HoldSeatsJSONRequestBody

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

	hold, err := app.bookings.HoldSeats(r.Context(), showId, input.SeatIds, holdTimeout(input.HoldTimeoutSeconds))
	if err != nil {
		logger.Warn("hold rejected", "show_id", showId, "seats", input.SeatIds, "error", err)
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiHold(*hold), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ConfirmHold(w http.ResponseWriter, r *http.Request, holdId api.HoldId) {
	logger := app.contextGetLogger(r)

	b, err := app.bookings.ConfirmHold(r.Context(), holdId)
	if err != nil {
		logger.Warn("hold confirmation rejected", "hold_id", holdId, "error", err)
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

func (app *Application) ReleaseHold(w http.ResponseWriter, r *http.Request, holdId api.HoldId) {
	err := app.bookings.ReleaseHold(r.Context(), holdId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toApiHold(h domain.SeatHold) api.HoldResponse {
	return api.HoldResponse{
		Id:        h.ID,
		ShowId:    h.ShowID,
		SeatIds:   h.SeatIDs,
		Price:     h.Price,
		ExpiresAt: h.ExpiresAt,
		CreatedAt: h.CreatedAt,
	}
}
