package adaptor

import (
	"net/http"

	"cinebook/internal/dto/request"
	"cinebook/internal/usecase"
	"cinebook/pkg/utils"

	"go.uber.org/zap"
)

type SeatHandler struct {
	service usecase.SeatService
	log     *zap.Logger
}

func NewSeatHandler(service usecase.SeatService, log *zap.Logger) *SeatHandler {
	return &SeatHandler{
		service: service,
		log:     log.With(zap.String("handler", "seat")),
	}
}

// GetSeatsByShowtime handles GET /api/showtimes/{id}/seats
func (h *SeatHandler) GetSeatsByShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get seats")
		return
	}

	seats, err := h.service.GetSeatsByShowtime(r.Context(), showtimeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get seats")
		return
	}

	utils.ResponseSuccess(w, "Seats retrieved successfully", seats)
}

// GetSeatByID handles GET /api/seats/{id}
func (h *SeatHandler) GetSeatByID(w http.ResponseWriter, r *http.Request) {
	seatID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get seat")
		return
	}

	seat, err := h.service.GetSeatByID(r.Context(), seatID)
	if err != nil {
		handleServiceError(w, h.log, err, "get seat")
		return
	}

	utils.ResponseSuccess(w, "Seat retrieved successfully", seat)
}

// UpdateSeat handles PUT /api/admin/seats/{id}
func (h *SeatHandler) UpdateSeat(w http.ResponseWriter, r *http.Request) {
	seatID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "update seat")
		return
	}

	var req request.SeatUpdateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "update seat")
		return
	}

	seat, err := h.service.UpdateSeat(r.Context(), seatID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update seat")
		return
	}

	utils.ResponseSuccess(w, "Seat updated successfully", seat)
}
