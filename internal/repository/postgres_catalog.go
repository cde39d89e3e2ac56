package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/seat-inventory/internal/domain"
)

type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

func (p *PostgresCatalogRepository) GetShowInventory(ctx context.Context, showID string) (*domain.ShowInventory, error) {
	query := `
		SELECT id, movie_id, movie_title, screen, city, start_time, base_price
		FROM shows
		WHERE id = $1
	`

	var (
		inventory domain.ShowInventory
		basePrice pgtype.Numeric
	)

	err := p.db.QueryRow(ctx, query, showID).Scan(
		&inventory.Show.ID,
		&inventory.Show.MovieID,
		&inventory.Show.MovieTitle,
		&inventory.Show.Screen,
		&inventory.Show.City,
		&inventory.Show.StartTime,
		&basePrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	inventory.Show.BasePrice, err = numericToDecimal(basePrice)
	if err != nil {
		return nil, fmt.Errorf("base price of show %s: %w", showID, err)
	}

	query = `
		SELECT seat_id, category, extra_price
		FROM show_seats
		WHERE show_id = $1
		ORDER BY seat_id
	`

	rows, err := p.db.Query(ctx, query, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			seat       domain.Seat
			extraPrice pgtype.Numeric
		)

		err = rows.Scan(&seat.ID, &seat.Category, &extraPrice)
		if err != nil {
			return nil, err
		}

		seat.ShowID = showID
		seat.State = domain.SeatAvailable

		seat.ExtraPrice, err = numericToDecimal(extraPrice)
		if err != nil {
			return nil, fmt.Errorf("extra price of seat %s: %w", seat.ID, err)
		}

		inventory.Seats = append(inventory.Seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &inventory, nil
}
