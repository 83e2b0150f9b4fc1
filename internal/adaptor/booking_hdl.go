package adaptor

import (
	"net/http"

	"cinebook/internal/dto/request"
	"cinebook/internal/usecase"
	"cinebook/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Quote handles POST /api/bookings/quote (public)
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "quote booking")
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote booking")
		return
	}

	utils.ResponseSuccess(w, "Quote calculated successfully", quote)
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", booking)
}

// GetBooking handles GET /api/bookings/{id} (owner or admin)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	booking, err := h.service.GetBooking(r.Context(), bookingID, userID, utils.IsAdmin(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved successfully", booking)
}

// GetUserBookings handles GET /api/user/bookings?limit=&offset= (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := request.PaginationFromQuery(r.URL.Query())

	bookings, err := h.service.GetUserBookings(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// CancelBooking handles POST /api/bookings/{id}/cancel and its admin twin.
// Admins may cancel any booking; customers only their own.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), bookingID, userID, utils.IsAdmin(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", booking)
}

// GetPaymentMethods handles GET /api/payment-methods (public)
func (h *BookingHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Payment methods retrieved successfully", h.service.GetPaymentMethods(r.Context()))
}

// GetAllBookings handles GET /api/admin/bookings?status=&user_id=&limit=&offset=
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.BookingListRequest{
		PaginatedRequest: request.PaginationFromQuery(query),
		Status:           query.Get("status"),
		UserID:           query.Get("user_id"),
	}

	bookings, err := h.service.GetAllBookings(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}
