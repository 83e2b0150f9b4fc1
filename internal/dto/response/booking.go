package response

import (
	"time"

	"cinebook/internal/data/entity"
)

type PaymentMethodResponse struct {
	Code entity.PaymentMethod `json:"code"`
	Name string               `json:"name"`
}

type BookingResponse struct {
	ID            int64                `json:"id"`
	UserID        string               `json:"user_id"`
	ShowtimeID    int64                `json:"showtime_id"`
	TotalSeats    int                  `json:"total_seats"`
	TotalAmount   int64                `json:"total_amount"`
	PaymentMethod entity.PaymentMethod `json:"payment_method"`
	Status        entity.BookingStatus `json:"status"`
	BookingDate   time.Time            `json:"booking_date"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type BookingFoodResponse struct {
	FoodItemID int64  `json:"food_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
}

type BookingDetailResponse struct {
	BookingResponse
	Showtime *ShowtimeResponse     `json:"showtime,omitempty"`
	Seats    []SeatResponse        `json:"seats"`
	Food     []BookingFoodResponse `json:"food"`
}

type QuoteLineResponse struct {
	FoodItemID int64  `json:"food_item_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	LineTotal  int64  `json:"line_total"`
}

type QuoteResponse struct {
	SeatCount      int                 `json:"seat_count"`
	UnitPrice      int64               `json:"unit_price"`
	TicketSubtotal int64               `json:"ticket_subtotal"`
	FoodSubtotal   int64               `json:"food_subtotal"`
	Total          int64               `json:"total"`
	Lines          []QuoteLineResponse `json:"lines"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID.String(),
		ShowtimeID:    b.ShowtimeID,
		TotalSeats:    b.TotalSeats,
		TotalAmount:   b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		Status:        b.Status,
		BookingDate:   b.BookingDate,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b))
	}
	return out
}

func BookingToDetailResponse(b *entity.Booking, showtime *entity.ShowtimeWithMovie, seats []*entity.Seat, food []*entity.BookingFoodLine) BookingDetailResponse {
	resp := BookingDetailResponse{
		BookingResponse: BookingToResponse(b),
		Seats:           SeatsToResponse(seats),
		Food:            make([]BookingFoodResponse, 0, len(food)),
	}

	if showtime != nil {
		st := ShowtimeWithMovieToResponse(showtime)
		resp.Showtime = &st
	}

	for _, line := range food {
		resp.Food = append(resp.Food, BookingFoodResponse{
			FoodItemID: line.FoodItemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.Price,
		})
	}

	return resp
}

func QuoteToResponse(q entity.Quote) QuoteResponse {
	resp := QuoteResponse{
		SeatCount:      q.SeatCount,
		UnitPrice:      q.UnitPrice,
		TicketSubtotal: q.TicketSubtotal,
		FoodSubtotal:   q.FoodSubtotal,
		Total:          q.Total,
		Lines:          make([]QuoteLineResponse, 0, len(q.Lines)),
	}
	for _, l := range q.Lines {
		resp.Lines = append(resp.Lines, QuoteLineResponse{
			FoodItemID: l.FoodItemID,
			Name:       l.Name,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
			LineTotal:  l.LineTotal,
		})
	}
	return resp
}

var paymentMethodNames = map[entity.PaymentMethod]string{
	entity.PaymentCard:   "Credit / Debit Card",
	entity.PaymentUPI:    "UPI",
	entity.PaymentWallet: "Wallet",
	entity.PaymentCash:   "Cash at Counter",
}

func PaymentMethodsToResponse(methods []entity.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, PaymentMethodResponse{Code: m, Name: paymentMethodNames[m]})
	}
	return out
}
