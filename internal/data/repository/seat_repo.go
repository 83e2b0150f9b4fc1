package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinebook/internal/data/entity"
	"cinebook/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByID(ctx context.Context, id int64) (*entity.Seat, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Seat, error)
	FindByShowtimeID(ctx context.Context, showtimeID int64) ([]*entity.Seat, error)

	// Booking state transitions
	MarkBooked(ctx context.Context, seatID, showtimeID, bookingID int64) (bool, error)
	Release(ctx context.Context, seatIDs []int64, bookingID int64) (int64, error)
	SetBooked(ctx context.Context, id int64, isBooked bool, bookingID *int64) (*entity.Seat, error)
}

type seatRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewSeatRepository(db database.DBTX, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

const seatColumns = `id, showtime_id, seat_row, seat_number, is_booked, booking_id, created_at`

func scanSeat(row rowScanner) (*entity.Seat, error) {
	var seat entity.Seat
	err := row.Scan(
		&seat.ID,
		&seat.ShowtimeID,
		&seat.Row,
		&seat.SeatNumber,
		&seat.IsBooked,
		&seat.BookingID,
		&seat.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO seats (showtime_id, seat_row, seat_number, is_booked, created_at) VALUES `)
	args := make([]any, 0, len(seats)*5)

	for i, seat := range seats {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", i*5+1, i*5+2, i*5+3, i*5+4, i*5+5)
		args = append(args,
			seat.ShowtimeID,
			seat.Row,
			seat.SeatNumber,
			seat.IsBooked,
			seat.CreatedAt,
		)
	}
	sb.WriteString(" RETURNING id")

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create %d seats: %w", len(seats), err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i < len(seats) {
			if err := rows.Scan(&seats[i].ID); err != nil {
				return fmt.Errorf("scan seat id: %w", err)
			}
		}
		i++
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to create batch seats", zap.Error(err), zap.Int("count", len(seats)))
		return fmt.Errorf("create %d seats: %w", len(seats), err)
	}

	return nil
}

func (r *seatRepository) FindByID(ctx context.Context, id int64) (*entity.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE id = $1`

	seat, err := scanSeat(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.Int64("seat_id", id),
		)
		return nil, fmt.Errorf("find seat by ID %d: %w", id, err)
	}

	return seat, nil
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `SELECT ` + seatColumns + ` FROM seats WHERE id = ANY($1) ORDER BY seat_row ASC, seat_number ASC, id ASC`
	return r.list(ctx, "find seats by IDs", query, ids)
}

func (r *seatRepository) FindByShowtimeID(ctx context.Context, showtimeID int64) ([]*entity.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE showtime_id = $1 ORDER BY seat_row ASC, seat_number ASC, id ASC`
	return r.list(ctx, "find seats by showtime", query, showtimeID)
}

func (r *seatRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Seat, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	seats := make([]*entity.Seat, 0)
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return seats, nil
}

// MarkBooked flips an available seat of the given showtime to booked and links
// it to bookingID. It reports false when the seat was already booked or does
// not belong to the showtime, leaving the row untouched.
func (r *seatRepository) MarkBooked(ctx context.Context, seatID, showtimeID, bookingID int64) (bool, error) {
	query := `
		UPDATE seats
		SET is_booked = TRUE, booking_id = $3
		WHERE id = $1 AND showtime_id = $2 AND is_booked = FALSE
	`

	result, err := r.db.Exec(ctx, query, seatID, showtimeID, bookingID)
	if err != nil {
		r.log.Error("Failed to mark seat booked",
			zap.Error(err),
			zap.Int64("seat_id", seatID),
			zap.Int64("booking_id", bookingID),
		)
		return false, fmt.Errorf("mark seat %d booked: %w", seatID, err)
	}

	return result.RowsAffected() == 1, nil
}

// Release clears the booked flag on the given seats while bookingID still holds
// them. Seats since rebooked by another booking are left alone. booking_id is
// kept as a record of the last booking that held the seat.
func (r *seatRepository) Release(ctx context.Context, seatIDs []int64, bookingID int64) (int64, error) {
	if len(seatIDs) == 0 {
		return 0, nil
	}

	result, err := r.db.Exec(ctx, `UPDATE seats SET is_booked = FALSE
		WHERE id = ANY($1) AND is_booked = TRUE AND booking_id = $2`, seatIDs, bookingID)
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.Int("seat_count", len(seatIDs)),
			zap.Int64("booking_id", bookingID),
		)
		return 0, fmt.Errorf("release %d seats of booking %d: %w", len(seatIDs), bookingID, err)
	}

	return result.RowsAffected(), nil
}

// SetBooked overwrites the booked flag and booking link of one seat and
// returns the updated row, or nil when the seat does not exist.
func (r *seatRepository) SetBooked(ctx context.Context, id int64, isBooked bool, bookingID *int64) (*entity.Seat, error) {
	query := `
		UPDATE seats
		SET is_booked = $2, booking_id = $3
		WHERE id = $1
		RETURNING ` + seatColumns

	seat, err := scanSeat(r.db.QueryRow(ctx, query, id, isBooked, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update seat",
			zap.Error(err),
			zap.Int64("seat_id", id),
		)
		return nil, fmt.Errorf("update seat %d: %w", id, err)
	}

	return seat, nil
}
