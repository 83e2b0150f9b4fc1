package request

// CreateBookingRequest confirms seats and food for one showtime. Food maps a
// food item id to its quantity.
type CreateBookingRequest struct {
	ShowtimeID    int64         `json:"showtime_id" validate:"required,gt=0"`
	SeatIDs       []int64       `json:"seat_ids" validate:"dive,gt=0"`
	Food          map[int64]int `json:"food,omitempty" validate:"omitempty,dive,keys,gt=0,endkeys"`
	PaymentMethod string        `json:"payment_method"`
}

// QuoteRequest prices a selection without booking it.
type QuoteRequest struct {
	ShowtimeID int64         `json:"showtime_id" validate:"required,gt=0"`
	SeatIDs    []int64       `json:"seat_ids" validate:"dive,gt=0"`
	Food       map[int64]int `json:"food,omitempty" validate:"omitempty,dive,keys,gt=0,endkeys"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status string
	UserID string
}
