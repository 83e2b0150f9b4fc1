package request

type ShowtimeRequest struct {
	MovieID      int64  `json:"movie_id" validate:"required,gt=0"`
	ShowDate     string `json:"show_date" validate:"required,datetime=2006-01-02"`
	ShowTime     string `json:"show_time" validate:"required,datetime=15:04"`
	ScreenNumber int    `json:"screen_number" validate:"required,gt=0"`
	TotalSeats   int    `json:"total_seats" validate:"required,gt=0,max=1000"`
	SeatsPerRow  int    `json:"seats_per_row,omitempty" validate:"omitempty,gt=0,max=50"`
	Price        int64  `json:"price" validate:"gte=0"`
}

// ShowtimeUpdateRequest changes schedule fields and price. Seat capacity is
// fixed once the seat rows exist.
type ShowtimeUpdateRequest struct {
	MovieID      *int64  `json:"movie_id,omitempty" validate:"omitempty,gt=0"`
	ShowDate     *string `json:"show_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ShowTime     *string `json:"show_time,omitempty" validate:"omitempty,datetime=15:04"`
	ScreenNumber *int    `json:"screen_number,omitempty" validate:"omitempty,gt=0"`
	Price        *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
}

type ShowtimeListRequest struct {
	PaginatedRequest
	MovieID      *int64
	Date         string
	ScreenNumber *int
}
