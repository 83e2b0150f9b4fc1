package repository

import (
	"context"
	"fmt"
	"strings"

	"cinebook/internal/data/entity"
	"cinebook/pkg/database"

	"go.uber.org/zap"
)

type BookingSeatRepository interface {
	CreateBatch(ctx context.Context, bookingSeats []*entity.BookingSeat) error
	FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingSeat, error)

	// FindSeatsByBookingID returns the seat rows linked to a booking, in
	// row/number order.
	FindSeatsByBookingID(ctx context.Context, bookingID int64) ([]*entity.Seat, error)
}

type bookingSeatRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBookingSeatRepository(db database.DBTX, log *zap.Logger) BookingSeatRepository {
	return &bookingSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_seat")),
	}
}

func (r *bookingSeatRepository) CreateBatch(ctx context.Context, bookingSeats []*entity.BookingSeat) error {
	if len(bookingSeats) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO booking_seats (booking_id, seat_id, created_at) VALUES `)
	args := make([]any, 0, len(bookingSeats)*3)

	for i, bs := range bookingSeats {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)
		args = append(args, bs.BookingID, bs.SeatID, bs.CreatedAt)
	}
	sb.WriteString(" RETURNING id")

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		r.log.Error("Failed to create booking seats",
			zap.Error(err),
			zap.Int64("booking_id", bookingSeats[0].BookingID),
			zap.Int("count", len(bookingSeats)),
		)
		return fmt.Errorf("create booking seats for booking %d: %w", bookingSeats[0].BookingID, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i < len(bookingSeats) {
			if err := rows.Scan(&bookingSeats[i].ID); err != nil {
				return fmt.Errorf("scan booking seat id: %w", err)
			}
		}
		i++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("create booking seats for booking %d: %w", bookingSeats[0].BookingID, err)
	}

	return nil
}

func (r *bookingSeatRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingSeat, error) {
	query := `
		SELECT id, booking_id, seat_id, created_at
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking seats",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find booking seats for booking %d: %w", bookingID, err)
	}
	defer rows.Close()

	bookingSeats := make([]*entity.BookingSeat, 0)
	for rows.Next() {
		var bs entity.BookingSeat
		if err := rows.Scan(&bs.ID, &bs.BookingID, &bs.SeatID, &bs.CreatedAt); err != nil {
			r.log.Error("Failed to scan booking seat", zap.Error(err))
			return nil, fmt.Errorf("scan booking seat: %w", err)
		}
		bookingSeats = append(bookingSeats, &bs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking seats: %w", err)
	}

	return bookingSeats, nil
}

func (r *bookingSeatRepository) FindSeatsByBookingID(ctx context.Context, bookingID int64) ([]*entity.Seat, error) {
	query := `
		SELECT s.id, s.showtime_id, s.seat_row, s.seat_number, s.is_booked, s.booking_id, s.created_at
		FROM booking_seats bs
		JOIN seats s ON s.id = bs.seat_id
		WHERE bs.booking_id = $1
		ORDER BY s.seat_row ASC, s.seat_number ASC, s.id ASC
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find seats for booking",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find seats for booking %d: %w", bookingID, err)
	}
	defer rows.Close()

	seats := make([]*entity.Seat, 0)
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			r.log.Error("Failed to scan booked seat", zap.Error(err))
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seats for booking %d: %w", bookingID, err)
	}

	return seats, nil
}
