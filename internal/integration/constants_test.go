package integration_test

const (
	TestShowID     = "show-1"
	TestMovieID    = "movie-1"
	TestMovieTitle = "Test Movie"
	TestScreen     = "Screen 1"
	TestCity       = "Istanbul"
	TestBasePrice  = "12.50"

	// seats seeded for TestShowID, see testdata/shows_up.sql
	TestRegularSeat  = "A1"
	TestRegularSeat2 = "A2"
	TestPremiumSeat  = "B1"
	TestReclinerSeat = "C1"
)
