package repository

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/data/entity"
	"cinebook/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error)
	Count(ctx context.Context, filter entity.BookingFilter) (int64, error)

	// UpdateStatus moves a booking from one status to another and reports
	// false when the booking was not in the expected status.
	UpdateStatus(ctx context.Context, id int64, from, to entity.BookingStatus) (bool, error)
}

type bookingRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBookingRepository(db database.DBTX, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, showtime_id, total_seats, total_amount, booking_date,
	status, payment_method, created_at, updated_at`

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowtimeID,
		&booking.TotalSeats,
		&booking.TotalAmount,
		&booking.BookingDate,
		&booking.Status,
		&booking.PaymentMethod,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (user_id, showtime_id, total_seats, total_amount, booking_date,
		                      status, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		booking.UserID,
		booking.ShowtimeID,
		booking.TotalSeats,
		booking.TotalAmount,
		booking.BookingDate,
		booking.Status,
		booking.PaymentMethod,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.ID)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.Int64("showtime_id", booking.ShowtimeID),
		)
		return fmt.Errorf("create booking for showtime %d: %w", booking.ShowtimeID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

// FindByIDForUpdate locks the booking row until the surrounding transaction
// ends. Outside a transaction the lock is released immediately.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *bookingRepository) findOne(ctx context.Context, query string, id int64) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return r.FindAll(ctx, entity.BookingFilter{UserID: &userID, Limit: limit, Offset: offset})
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.Count(ctx, entity.BookingFilter{UserID: &userID})
}

func bookingWhere(filter entity.BookingFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Status != nil {
		w.add("status = $%d", *filter.Status)
	}
	if filter.UserID != nil {
		w.add("user_id = $%d", *filter.UserID)
	}
	return w
}

func (r *bookingRepository) FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	w := bookingWhere(filter)
	suffix, args := w.page(filter.Limit, filter.Offset)
	query := `SELECT ` + bookingColumns + ` FROM bookings` + w.clause() +
		` ORDER BY created_at DESC, id DESC` + suffix

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	w := bookingWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+w.clause(), w.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return total, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, from, to entity.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("update booking %d status: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}
