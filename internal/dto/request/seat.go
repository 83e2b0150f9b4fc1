package request

// SeatUpdateRequest is the only writable surface of a seat.
type SeatUpdateRequest struct {
	IsBooked  *bool  `json:"is_booked" validate:"required"`
	BookingID *int64 `json:"booking_id" validate:"omitempty,gt=0"`
}
