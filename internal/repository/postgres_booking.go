package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/seat-inventory/internal/domain"
)

// PostgresBookingJournal persists confirmed and cancelled bookings so a show's
// inventory can be rebuilt after a restart.
type PostgresBookingJournal struct {
	db *pgxpool.Pool
}

func NewPostgresBookingJournal(db *pgxpool.Pool) *PostgresBookingJournal {
	return &PostgresBookingJournal{
		db: db,
	}
}

// RecordConfirmed is idempotent: recording the same booking twice is not an
// error.
// RecordConfirmed is idempotent: recording the same booking twice is not an
// error, and a booking already journaled as cancelled stays cancelled.
func (p *PostgresBookingJournal) RecordConfirmed(ctx context.Context, booking domain.Booking) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (id, show_id, price, status, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`

		result, err := tx.Exec(
			ctx,
			query,
			booking.ID,
			booking.ShowID,
			decimalToNumeric(booking.Price),
			string(domain.BookingConfirmed),
			booking.CreatedAt)

		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return nil
		}

		rows := make([][]any, 0, len(booking.SeatIDs))
		for _, seatID := range booking.SeatIDs {
			rows = append(rows, []any{
				booking.ID,
				booking.ShowID,
				seatID,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "show_id", "seat_id"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	if isForeignKeyViolation(err) {
		return fmt.Errorf("booking %s references an unknown show or seat: %w", booking.ID, domain.ErrRecordNotFound)
	}

	return err
}

// RecordCancelled upserts the booking as CANCELLED, so a cancellation journaled
// before its confirmation is never overwritten by it.
func (p *PostgresBookingJournal) RecordCancelled(ctx context.Context, booking domain.Booking) error {
	query := `
		INSERT INTO bookings (id, show_id, price, status, created_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, cancelled_at = EXCLUDED.cancelled_at
	`

	cancelledAt := time.Now()
	if booking.CancelledAt != nil {
		cancelledAt = *booking.CancelledAt
	}

	_, err := p.db.Exec(
		ctx,
		query,
		booking.ID,
		booking.ShowID,
		decimalToNumeric(booking.Price),
		string(domain.BookingCancelled),
		booking.CreatedAt,
		cancelledAt)

	if isForeignKeyViolation(err) {
		return fmt.Errorf("booking %s references an unknown show: %w", booking.ID, domain.ErrRecordNotFound)
	}

	return err
}

func (p *PostgresBookingJournal) ConfirmedByShow(ctx context.Context, showID string) ([]domain.Booking, error) {
	query := `
		SELECT b.id, b.show_id, b.price, b.status, b.created_at, array_agg(bs.seat_id ORDER BY bs.seat_id)
		FROM bookings b
		JOIN booking_seats bs ON bs.booking_id = b.id
		WHERE b.show_id = $1 AND b.status = $2
		GROUP BY b.id
		ORDER BY b.created_at, b.id
	`

	rows, err := p.db.Query(ctx, query, showID, string(domain.BookingConfirmed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var (
			booking domain.Booking
			price   pgtype.Numeric
		)

		err = rows.Scan(
			&booking.ID,
			&booking.ShowID,
			&price,
			&booking.Status,
			&booking.CreatedAt,
			&booking.SeatIDs,
		)
		if err != nil {
			return nil, err
		}

		booking.Price, err = numericToDecimal(price)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
