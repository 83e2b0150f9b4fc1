package request

// DraftActionRequest is one reducer action. Which optional fields apply
// depends on Type.
type DraftActionRequest struct {
	Type          string  `json:"type" validate:"required"`
	ShowtimeID    *int64  `json:"showtime_id,omitempty"`
	SeatID        *int64  `json:"seat_id,omitempty"`
	SeatIDs       []int64 `json:"seat_ids,omitempty"`
	FoodItemID    *int64  `json:"food_item_id,omitempty"`
	Quantity      *int    `json:"quantity,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
}
