package adaptor

import (
	"net/http"

	"cinebook/internal/dto/request"
	"cinebook/internal/usecase"
	"cinebook/pkg/utils"

	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetShowtimes handles GET /api/showtimes?movie_id=&date=&screen_number=&limit=&offset=
func (h *ShowtimeHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	movieID, err := utils.ParseOptionalID(query.Get("movie_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get showtimes")
		return
	}

	screen, err := utils.ParseOptionalID(query.Get("screen_number"))
	if err != nil {
		handleServiceError(w, h.log, err, "get showtimes")
		return
	}

	req := &request.ShowtimeListRequest{
		PaginatedRequest: request.PaginationFromQuery(query),
		MovieID:          movieID,
		Date:             query.Get("date"),
	}
	if screen != nil {
		n := int(*screen)
		req.ScreenNumber = &n
	}

	showtimes, err := h.service.GetShowtimes(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "Showtimes retrieved successfully", showtimes)
}

// GetShowtimeByID handles GET /api/showtimes/{id}
func (h *ShowtimeHandler) GetShowtimeByID(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get showtime")
		return
	}

	showtime, err := h.service.GetShowtimeByID(r.Context(), showtimeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime retrieved successfully", showtime)
}

// CreateShowtime handles POST /api/admin/showtimes and lays out its seats.
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create showtime")
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime created successfully", showtime)
}

// UpdateShowtime handles PUT /api/admin/showtimes/{id}
func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "update showtime")
		return
	}

	var req request.ShowtimeUpdateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "update showtime")
		return
	}

	showtime, err := h.service.UpdateShowtime(r.Context(), showtimeID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime updated successfully", showtime)
}

// DeleteShowtime handles DELETE /api/admin/showtimes/{id}
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "delete showtime")
		return
	}

	if err := h.service.DeleteShowtime(r.Context(), showtimeID); err != nil {
		handleServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime deleted successfully", nil)
}
