package repository

import (
	"context"
	"fmt"
	"strings"

	"cinebook/internal/data/entity"
	"cinebook/pkg/database"

	"go.uber.org/zap"
)

type BookingFoodRepository interface {
	CreateBatch(ctx context.Context, lines []*entity.BookingFood) error
	FindLinesByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingFoodLine, error)
}

type bookingFoodRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBookingFoodRepository(db database.DBTX, log *zap.Logger) BookingFoodRepository {
	return &bookingFoodRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_food")),
	}
}

func (r *bookingFoodRepository) CreateBatch(ctx context.Context, lines []*entity.BookingFood) error {
	if len(lines) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO booking_food (booking_id, food_item_id, quantity, created_at) VALUES `)
	args := make([]any, 0, len(lines)*4)

	for i, line := range lines {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d)", i*4+1, i*4+2, i*4+3, i*4+4)
		args = append(args, line.BookingID, line.FoodItemID, line.Quantity, line.CreatedAt)
	}
	sb.WriteString(" RETURNING id")

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		r.log.Error("Failed to create booking food lines",
			zap.Error(err),
			zap.Int64("booking_id", lines[0].BookingID),
			zap.Int("count", len(lines)),
		)
		return fmt.Errorf("create food lines for booking %d: %w", lines[0].BookingID, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i < len(lines) {
			if err := rows.Scan(&lines[i].ID); err != nil {
				return fmt.Errorf("scan booking food id: %w", err)
			}
		}
		i++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("create food lines for booking %d: %w", lines[0].BookingID, err)
	}

	return nil
}

func (r *bookingFoodRepository) FindLinesByBookingID(ctx context.Context, bookingID int64) ([]*entity.BookingFoodLine, error) {
	query := `
		SELECT bf.id, bf.booking_id, bf.food_item_id, bf.quantity, bf.created_at,
		       f.name, f.price
		FROM booking_food bf
		JOIN food_items f ON f.id = bf.food_item_id
		WHERE bf.booking_id = $1
		ORDER BY bf.id ASC
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking food lines",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find food lines for booking %d: %w", bookingID, err)
	}
	defer rows.Close()

	lines := make([]*entity.BookingFoodLine, 0)
	for rows.Next() {
		var line entity.BookingFoodLine
		err := rows.Scan(
			&line.ID,
			&line.BookingID,
			&line.FoodItemID,
			&line.Quantity,
			&line.CreatedAt,
			&line.Name,
			&line.Price,
		)
		if err != nil {
			r.log.Error("Failed to scan booking food line", zap.Error(err))
			return nil, fmt.Errorf("scan booking food line: %w", err)
		}
		lines = append(lines, &line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food lines for booking %d: %w", bookingID, err)
	}

	return lines, nil
}
