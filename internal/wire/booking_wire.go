package wire

import (
	"cinebook/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, g guards) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/payment-methods", bookingHandler.GetPaymentMethods)
	r.Post("/api/bookings/quote", bookingHandler.Quote)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Post("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings) // ?limit=&offset=
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Get("/", bookingHandler.GetAllBookings)            // ?status=&user_id=&limit=&offset=
		r.Post("/{id}/cancel", bookingHandler.CancelBooking) // any owner
	})
}
