package usecase

import (
	"cinebook/internal/data/repository"
	"cinebook/pkg/messaging"
	"cinebook/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Movie       MovieService
	Showtime    ShowtimeService
	Seat        SeatService
	FoodItem    FoodItemService
	Booking     BookingService
	Draft       DraftService
	Maintenance MaintenanceService
}

// NewService assembles every use case. drafts is nil when Redis is not
// configured and publisher falls back to a no-op when RabbitMQ is absent.
func NewService(repo *repository.Repository, drafts repository.DraftRepository, publisher messaging.Publisher, config *utils.Config, log *zap.Logger) *Service {
	booking := NewBookingService(repo, drafts, publisher, log)

	return &Service{
		Auth:        NewAuthService(repo, config, log),
		User:        NewUserService(repo.User, log),
		Movie:       NewMovieService(repo, log),
		Showtime:    NewShowtimeService(repo, log),
		Seat:        NewSeatService(repo, log),
		FoodItem:    NewFoodItemService(repo, log),
		Booking:     booking,
		Draft:       NewDraftService(drafts, repo, booking, log),
		Maintenance: NewMaintenanceService(repo, log),
	}
}
