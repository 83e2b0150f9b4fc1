package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentWallet PaymentMethod = "wallet"
	PaymentCash   PaymentMethod = "cash"
)

// PaymentMethods lists the accepted tags in display order.
var PaymentMethods = []PaymentMethod{PaymentCard, PaymentUPI, PaymentWallet, PaymentCash}

func (p PaymentMethod) Valid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

type Booking struct {
	Base
	UserID        uuid.UUID     `db:"user_id"`
	ShowtimeID    int64         `db:"showtime_id"`
	TotalSeats    int           `db:"total_seats"`
	TotalAmount   int64         `db:"total_amount"`
	BookingDate   time.Time     `db:"booking_date"`
	Status        BookingStatus `db:"status"`
	PaymentMethod PaymentMethod `db:"payment_method"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

type BookingFilter struct {
	Status *BookingStatus
	UserID *uuid.UUID
	Limit  int
	Offset int
}
