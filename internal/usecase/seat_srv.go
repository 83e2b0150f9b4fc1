package usecase

import (
	"context"
	"fmt"

	"cinebook/internal/data/repository"
	"cinebook/internal/dto/request"
	"cinebook/internal/dto/response"
	"cinebook/pkg/utils"

	"go.uber.org/zap"
)

type SeatService interface {
	GetSeatsByShowtime(ctx context.Context, showtimeID int64) ([]response.SeatResponse, error)
	GetSeatByID(ctx context.Context, seatID int64) (*response.SeatResponse, error)
	UpdateSeat(ctx context.Context, seatID int64, req *request.SeatUpdateRequest) (*response.SeatResponse, error)
}

type seatService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSeatService(repo *repository.Repository, log *zap.Logger) SeatService {
	return &seatService{
		repo: repo,
		log:  log.With(zap.String("service", "seat")),
	}
}

func (s *seatService) GetSeatsByShowtime(ctx context.Context, showtimeID int64) ([]response.SeatResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, utils.NewNotFoundError(utils.CodeShowtimeNotFound, "Showtime not found")
	}

	seats, err := s.repo.Seat.FindByShowtimeID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("get seats: %w", err)
	}

	return response.SeatsToResponse(seats), nil
}

func (s *seatService) GetSeatByID(ctx context.Context, seatID int64) (*response.SeatResponse, error) {
	seat, err := s.repo.Seat.FindByID(ctx, seatID)
	if err != nil {
		return nil, fmt.Errorf("get seat: %w", err)
	}
	if seat == nil {
		return nil, utils.NewNotFoundError(utils.CodeSeatNotFound, "Seat not found")
	}

	resp := response.SeatToResponse(seat)
	return &resp, nil
}

// UpdateSeat overrides a seat's booked flag and booking link. The showtime's
// available counter follows the flag when it changes.
func (s *seatService) UpdateSeat(ctx context.Context, seatID int64, req *request.SeatUpdateRequest) (*response.SeatResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewValidationError(errs)
	}

	var resp response.SeatResponse
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		current, err := tx.Seat.FindByID(ctx, seatID)
		if err != nil {
			return err
		}
		if current == nil {
			return utils.NewNotFoundError(utils.CodeSeatNotFound, "Seat not found")
		}

		if req.BookingID != nil {
			booking, err := tx.Booking.FindByID(ctx, *req.BookingID)
			if err != nil {
				return err
			}
			if booking == nil {
				return utils.NewNotFoundError(utils.CodeBookingNotFound, "Booking not found")
			}
		}

		updated, err := tx.Seat.SetBooked(ctx, seatID, *req.IsBooked, req.BookingID)
		if err != nil {
			return err
		}
		if updated == nil {
			return utils.NewNotFoundError(utils.CodeSeatNotFound, "Seat not found")
		}

		if current.IsBooked != updated.IsBooked {
			delta := 1
			if updated.IsBooked {
				delta = -1
			}
			if err := tx.Showtime.AdjustAvailableSeats(ctx, updated.ShowtimeID, delta); err != nil {
				return err
			}
		}

		resp = response.SeatToResponse(updated)
		return nil
	})
	if err != nil {
		if _, ok := utils.AsAppError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("update seat: %w", err)
	}

	s.log.Info("Seat updated",
		zap.Int64("seat_id", seatID),
		zap.Bool("is_booked", resp.IsBooked),
	)

	return &resp, nil
}
