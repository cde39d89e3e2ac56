package app

import (
	"net/http"

	"github.com/metinatakli/seat-inventory/api"
	"github.com/metinatakli/seat-inventory/internal/domain"
)

func (app *Application) OpenShowInventory(w http.ResponseWriter, r *http.Request, showId api.ShowId) {
	logger := app.contextGetLogger(r)

	inv, err := app.bookings.OpenShow(r.Context(), showId)
	if err != nil {
		logger.Warn("failed to open show inventory", "show_id", showId, "error", err)
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.SeatMapResponse{
		Show:  toApiShow(inv.Show),
		Seats: toApiSeats(inv.Seats),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowSeats(w http.ResponseWriter, r *http.Request, showId api.ShowId, params api.GetShowSeatsParams) {
	show, err := app.seats.Show(showId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	var seats []domain.Seat
	if params.Available != nil && *params.Available {
		seats, err = app.seats.ListAvailable(showId)
	} else {
		seats, err = app.seats.ListSeats(showId)
	}

	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.SeatMapResponse{
		Show:  toApiShow(show),
		Seats: toApiSeats(seats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiShow(show domain.Show) api.Show {
	return api.Show{
		Id:         show.ID,
		MovieId:    show.MovieID,
		MovieTitle: show.MovieTitle,
		Screen:     show.Screen,
		City:       show.City,
		StartTime:  show.StartTime,
		BasePrice:  show.BasePrice,
	}
}

func toApiSeats(seats []domain.Seat) []api.Seat {
	apiSeats := make([]api.Seat, 0, len(seats))

	for _, seat := range seats {
		apiSeat := api.Seat{
			Id:         seat.ID,
			Category:   api.SeatCategory(seat.Category),
			ExtraPrice: seat.ExtraPrice,
			State:      api.SeatState(seat.State),
		}

		if seat.State == domain.SeatBlocked && !seat.HoldExpiresAt.IsZero() {
			expiresAt := seat.HoldExpiresAt
			apiSeat.HoldExpiresAt = &expiresAt
		}

		apiSeats = append(apiSeats, apiSeat)
	}

	return apiSeats
}
