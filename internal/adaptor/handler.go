package adaptor

import (
	"net/http"

	"cinebook/internal/usecase"
	"cinebook/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Movie    *MovieHandler
	Showtime *ShowtimeHandler
	Seat     *SeatHandler
	FoodItem *FoodItemHandler
	Booking  *BookingHandler
	Draft    *DraftHandler
	Health   *HealthHandler
}

func NewHandler(service *usecase.Service, health *HealthHandler, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Seat:     NewSeatHandler(service.Seat, log),
		FoodItem: NewFoodItemHandler(service.FoodItem, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Draft:    NewDraftHandler(service.Draft, log),
		Health:   health,
	}
}

// handleServiceError writes err as the JSON error body. Application errors
// keep their status and code; anything else is logged and reported as 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	if appErr, ok := utils.AsAppError(err); ok {
		if appErr.Status() >= http.StatusInternalServerError {
			log.Error(operation+" failed", zap.Error(err), zap.String("code", appErr.Code))
		} else {
			log.Debug(operation+" rejected", zap.String("code", appErr.Code), zap.String("reason", appErr.Message))
		}
		utils.ResponseAppError(w, appErr)
		return
	}

	log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	utils.ResponseInternalError(w)
}

// pathID reads a positive numeric {name} URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	return utils.ParseID(chi.URLParam(r, name))
}
