package response

import "cinebook/internal/data/entity"

type SeatResponse struct {
	ID         int64  `json:"id"`
	ShowtimeID int64  `json:"showtime_id"`
	Row        string `json:"row"`
	SeatNumber int    `json:"seat_number"`
	Label      string `json:"label"`
	IsBooked   bool   `json:"is_booked"`
	BookingID  *int64 `json:"booking_id"`
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:         seat.ID,
		ShowtimeID: seat.ShowtimeID,
		Row:        seat.Row,
		SeatNumber: seat.SeatNumber,
		Label:      seat.Label(),
		IsBooked:   seat.IsBooked,
		BookingID:  seat.BookingID,
	}
}

func SeatsToResponse(seats []*entity.Seat) []SeatResponse {
	out := make([]SeatResponse, 0, len(seats))
	for _, s := range seats {
		out = append(out, SeatToResponse(s))
	}
	return out
}
