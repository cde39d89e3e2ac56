package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/metinatakli/seat-inventory/api"
	"github.com/metinatakli/seat-inventory/internal/booking"
	"github.com/metinatakli/seat-inventory/internal/pricing"
	"github.com/metinatakli/seat-inventory/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type HoldsTestSuite struct {
	suite.Suite
	app   *Application
	clock *testClock
}

func (s *HoldsTestSuite) SetupTest() {
	s.clock = &testClock{now: time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)}
	s.app = newTestApplication(withCoordinator(
		pricing.NewEngine(pricing.PolicyAdditive),
		booking.WithClock(s.clock.Now),
	))
	openTestShow(s.T(), s.app)
}

func TestHoldsSuite(t *testing.T) {
	suite.Run(t, new(HoldsTestSuite))
}

func (s *HoldsTestSuite) holdSeats(timeoutSeconds int, seatIDs ...string) api.HoldResponse {
	s.T().Helper()

	body := api.SeatSelectionRequest{SeatIds: seatIDs, HoldTimeoutSeconds: &timeoutSeconds}

	w := serve(s.T(), s.app, http.MethodPost, "/v1/shows/"+testShowID+"/holds", body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp api.HoldResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

	return resp
}

func (s *HoldsTestSuite) TestHoldSeats() {
	hold := s.holdSeats(120, "B1", "A1")

	s.Equal(testShowID, hold.ShowId)
	s.Equal([]string{"A1", "B1"}, hold.SeatIds)
	s.True(decimal.NewFromInt(20).Equal(hold.Price))
	s.Equal(s.clock.now.Add(2*time.Minute), hold.ExpiresAt.UTC())

	w := serve(s.T(), s.app, http.MethodGet, "/v1/shows/"+testShowID+"/seats", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var seatMap api.SeatMapResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&seatMap))

	for _, seat := range seatMap.Seats {
		switch seat.Id {
		case "A1", "B1":
			s.Equal(api.BLOCKED, seat.State, seat.Id)
			s.Require().NotNil(seat.HoldExpiresAt, seat.Id)
			s.Equal(hold.ExpiresAt.UTC(), seat.HoldExpiresAt.UTC())
		default:
			s.Equal(api.AVAILABLE, seat.State, seat.Id)
			s.Nil(seat.HoldExpiresAt, seat.Id)
		}
	}

	// held seats cannot be booked by anyone else
	w = serve(s.T(), s.app, http.MethodPost, "/v1/shows/"+testShowID+"/bookings", api.SeatSelectionRequest{SeatIds: []string{"A1"}})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HoldsTestSuite) TestHoldSeatsValidation() {
	w := serve(s.T(), s.app, http.MethodPost, "/v1/shows/"+testShowID+"/holds", api.SeatSelectionRequest{
		SeatIds:            []string{"A1"},
		HoldTimeoutSeconds: ptr(901),
	})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	checkErrorResponse(s.T(), w, http.StatusUnprocessableEntity, fmt.Sprintf(validator.ErrMaxValue, "900"))
}

func (s *HoldsTestSuite) TestConfirmHold() {
	hold := s.holdSeats(300, "A2", "A3")

	s.clock.now = s.clock.now.Add(time.Minute)

	w := serve(s.T(), s.app, http.MethodPost, "/v1/holds/"+hold.Id+"/confirmation", nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var booked api.BookingResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&booked))
	s.Equal(api.CONFIRMED, booked.Status)
	s.Equal([]string{"A2", "A3"}, booked.SeatIds)
	s.True(hold.Price.Equal(booked.Price))

	// a hold is consumed by its confirmation
	w = serve(s.T(), s.app, http.MethodPost, "/v1/holds/"+hold.Id+"/confirmation", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = serve(s.T(), s.app, http.MethodGet, "/v1/bookings/"+booked.Id.String(), nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HoldsTestSuite) TestConfirmExpiredHold() {
	hold := s.holdSeats(60, "A1", "A2")

	s.clock.now = s.clock.now.Add(2 * time.Minute)

	w := serve(s.T(), s.app, http.MethodPost, "/v1/holds/"+hold.Id+"/confirmation", nil)
	s.Equal(http.StatusGone, w.Code)
	checkErrorResponse(s.T(), w, http.StatusGone, ErrHoldExpired)

	available, err := s.app.seats.ListAvailable(testShowID)
	s.Require().NoError(err)
	s.Len(available, 4, "an expired hold must give its seats back")
}

func (s *HoldsTestSuite) TestReleaseHold() {
	hold := s.holdSeats(300, "B1")

	w := serve(s.T(), s.app, http.MethodDelete, "/v1/holds/"+hold.Id, nil)
	s.Require().Equal(http.StatusNoContent, w.Code)

	available, err := s.app.seats.ListAvailable(testShowID)
	s.Require().NoError(err)
	s.Len(available, 4)

	w = serve(s.T(), s.app, http.MethodDelete, "/v1/holds/"+hold.Id, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = serve(s.T(), s.app, http.MethodDelete, "/v1/holds/not-a-hold", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	checkErrorResponse(s.T(), w, http.StatusBadRequest, `invalid path parameter "holdId"`)
}
