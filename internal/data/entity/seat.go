package entity

import "strconv"

type Seat struct {
	Base
	ShowtimeID int64  `db:"showtime_id"`
	Row        string `db:"seat_row"`    // A, B, C, ...
	SeatNumber int    `db:"seat_number"` // 1, 2, 3, ...
	IsBooked   bool   `db:"is_booked"`
	BookingID  *int64 `db:"booking_id"`
}

// Label renders the seat the way tickets print it, e.g. "C7".
func (s Seat) Label() string {
	return s.Row + strconv.Itoa(s.SeatNumber)
}
