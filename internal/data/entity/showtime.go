package entity

import "time"

type Showtime struct {
	Base
	MovieID        int64     `db:"movie_id"`
	ShowDate       time.Time `db:"show_date"`
	ShowTime       string    `db:"show_time"` // HH:MM
	ScreenNumber   int       `db:"screen_number"`
	TotalSeats     int       `db:"total_seats"`
	AvailableSeats int       `db:"available_seats"`
	Price          int64     `db:"price"` // per seat, minor units
}

// ShowtimeWithMovie is a showtime joined with its movie; Movie is nil when
// the movie row no longer exists.
type ShowtimeWithMovie struct {
	Showtime
	Movie *Movie
}

type ShowtimeFilter struct {
	MovieID      *int64
	Date         *time.Time
	ScreenNumber *int
	Limit        int
	Offset       int
}
