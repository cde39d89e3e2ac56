package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Show struct {
	ID         string
	MovieID    string
	MovieTitle string
	Screen     string
	City       string
	StartTime  time.Time
	BasePrice  decimal.Decimal
}

// ShowInventory is the seat allocation of a show as supplied by the catalog.
type ShowInventory struct {
	Show  Show
	Seats []Seat
}

type CatalogProvider interface {
	GetShowInventory(ctx context.Context, showID string) (*ShowInventory, error)
}
