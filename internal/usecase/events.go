package usecase

import (
	"context"
	"time"

	"cinebook/internal/data/entity"

	"go.uber.org/zap"
)

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"

	publishTimeout = 5 * time.Second
)

// BookingEvent is the message body published for booking state changes.
type BookingEvent struct {
	Event         string               `json:"event"`
	BookingID     int64                `json:"booking_id"`
	UserID        string               `json:"user_id"`
	ShowtimeID    int64                `json:"showtime_id"`
	SeatIDs       []int64              `json:"seat_ids"`
	TotalAmount   int64                `json:"total_amount"`
	PaymentMethod entity.PaymentMethod `json:"payment_method"`
	Status        entity.BookingStatus `json:"status"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

func newBookingEvent(event string, b *entity.Booking, seatIDs []int64) BookingEvent {
	return BookingEvent{
		Event:         event,
		BookingID:     b.ID,
		UserID:        b.UserID.String(),
		ShowtimeID:    b.ShowtimeID,
		SeatIDs:       seatIDs,
		TotalAmount:   b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		Status:        b.Status,
		OccurredAt:    time.Now().UTC(),
	}
}

// publish sends the event after the booking has committed. Failures are
// logged and never surface to the caller.
func (s *bookingService) publish(ctx context.Context, event BookingEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, event.Event, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("event", event.Event),
			zap.Int64("booking_id", event.BookingID),
		)
	}
}
