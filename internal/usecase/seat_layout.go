package usecase

import (
	"time"

	"cinebook/internal/data/entity"
	"cinebook/pkg/utils"
)

const (
	defaultSeatsPerRow = 10
	maxSeatRows        = 26 // rows are single letters A..Z
)

// buildSeatLayout lays out total seats row by row, perRow seats to a row,
// with the last row possibly shorter. Rows are lettered from A.
func buildSeatLayout(showtimeID int64, total, perRow int, now time.Time) ([]*entity.Seat, error) {
	if perRow <= 0 {
		perRow = defaultSeatsPerRow
	}
	if total <= 0 {
		return nil, utils.NewInvalidError(utils.CodeValidationFailed, "total_seats must be greater than 0")
	}

	rows := (total + perRow - 1) / perRow
	if rows > maxSeatRows {
		return nil, utils.NewInvalidError(utils.CodeValidationFailed,
			"total_seats needs more than 26 rows; raise seats_per_row")
	}

	seats := make([]*entity.Seat, 0, total)
	for i := 0; i < total; i++ {
		seats = append(seats, &entity.Seat{
			Base:       entity.Base{CreatedAt: now},
			ShowtimeID: showtimeID,
			Row:        string(rune('A' + i/perRow)),
			SeatNumber: i%perRow + 1,
		})
	}

	return seats, nil
}
