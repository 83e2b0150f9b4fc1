package entity

import "time"

// BookingDraft is the in-progress booking a user builds before checkout.
// It is only changed through reducer actions and serialised as JSON.
type BookingDraft struct {
	ShowtimeID    *int64        `json:"showtime_id"`
	SeatIDs       []int64       `json:"seat_ids"`
	Food          map[int64]int `json:"food"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func EmptyDraft() BookingDraft {
	return BookingDraft{
		SeatIDs: []int64{},
		Food:    map[int64]int{},
	}
}
