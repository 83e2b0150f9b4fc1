package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/data/entity"
	"cinebook/internal/data/repository"
	"cinebook/internal/dto/request"
	"cinebook/internal/dto/response"
	"cinebook/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	GetShowtimes(ctx context.Context, req *request.ShowtimeListRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error)
	GetShowtimeByID(ctx context.Context, showtimeID int64) (*response.ShowtimeResponse, error)
	CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, showtimeID int64, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID int64) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) GetShowtimes(ctx context.Context, req *request.ShowtimeListRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	filter := entity.ShowtimeFilter{
		MovieID:      req.MovieID,
		ScreenNumber: req.ScreenNumber,
		Limit:        req.Limit(),
		Offset:       req.Offset(),
	}

	if req.Date != "" {
		date, err := time.Parse(response.DateLayout, req.Date)
		if err != nil {
			return nil, utils.NewInvalidError(utils.CodeValidationFailed, "date must be YYYY-MM-DD")
		}
		filter.Date = &date
	}

	showtimes, err := s.repo.Showtime.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	total, err := s.repo.Showtime.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count showtimes: %w", err)
	}

	return response.NewPaginatedResponse(response.ShowtimesToResponse(showtimes), filter.Limit, filter.Offset, total), nil
}

func (s *showtimeService) GetShowtimeByID(ctx context.Context, showtimeID int64) (*response.ShowtimeResponse, error) {
	st, err := s.repo.Showtime.FindByIDWithMovie(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if st == nil {
		return nil, utils.NewNotFoundError(utils.CodeShowtimeNotFound, "Showtime not found")
	}

	resp := response.ShowtimeWithMovieToResponse(st)
	return &resp, nil
}

// CreateShowtime stores the showtime and its full seat grid in one
// transaction.
func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	showDate, err := time.Parse(response.DateLayout, req.ShowDate)
	if err != nil {
		return nil, utils.NewInvalidError(utils.CodeValidationFailed, "show_date must be YYYY-MM-DD")
	}

	// Fail on an impossible layout before touching the database.
	if _, err := buildSeatLayout(0, req.TotalSeats, req.SeatsPerRow, time.Time{}); err != nil {
		return nil, err
	}

	now := time.Now()
	showtime := &entity.Showtime{
		Base:           entity.Base{CreatedAt: now},
		MovieID:        req.MovieID,
		ShowDate:       showDate,
		ShowTime:       req.ShowTime,
		ScreenNumber:   req.ScreenNumber,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Price:          req.Price,
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		movie, err := tx.Movie.FindByID(ctx, req.MovieID)
		if err != nil {
			return fmt.Errorf("get movie: %w", err)
		}
		if movie == nil {
			return utils.NewNotFoundError(utils.CodeMovieNotFound, "Movie not found")
		}

		if err := tx.Showtime.Create(ctx, showtime); err != nil {
			return err
		}

		seats, err := buildSeatLayout(showtime.ID, req.TotalSeats, req.SeatsPerRow, now)
		if err != nil {
			return err
		}
		return tx.Seat.CreateBatch(ctx, seats)
	})
	if err != nil {
		if _, ok := utils.AsAppError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime created",
		zap.Int64("showtime_id", showtime.ID),
		zap.Int64("movie_id", showtime.MovieID),
		zap.Int("total_seats", showtime.TotalSeats),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, showtimeID int64, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update showtime validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, utils.NewNotFoundError(utils.CodeShowtimeNotFound, "Showtime not found")
	}

	if req.MovieID != nil && *req.MovieID != showtime.MovieID {
		movie, err := s.repo.Movie.FindByID(ctx, *req.MovieID)
		if err != nil {
			return nil, fmt.Errorf("get movie: %w", err)
		}
		if movie == nil {
			return nil, utils.NewNotFoundError(utils.CodeMovieNotFound, "Movie not found")
		}
		showtime.MovieID = *req.MovieID
	}
	if req.ShowDate != nil {
		date, err := time.Parse(response.DateLayout, *req.ShowDate)
		if err != nil {
			return nil, utils.NewInvalidError(utils.CodeValidationFailed, "show_date must be YYYY-MM-DD")
		}
		showtime.ShowDate = date
	}
	if req.ShowTime != nil {
		showtime.ShowTime = *req.ShowTime
	}
	if req.ScreenNumber != nil {
		showtime.ScreenNumber = *req.ScreenNumber
	}
	if req.Price != nil {
		showtime.Price = *req.Price
	}

	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewNotFoundError(utils.CodeShowtimeNotFound, "Showtime not found")
		}
		return nil, fmt.Errorf("update showtime: %w", err)
	}

	s.log.Info("Showtime updated", zap.Int64("showtime_id", showtime.ID))

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, showtimeID int64) error {
	deleted, err := s.repo.Showtime.Delete(ctx, showtimeID)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return utils.NewConflictError(utils.CodeShowtimeHasBookings, "Showtime has bookings and cannot be deleted")
		}
		return fmt.Errorf("delete showtime: %w", err)
	}
	if !deleted {
		return utils.NewNotFoundError(utils.CodeShowtimeNotFound, "Showtime not found")
	}

	s.log.Info("Showtime deleted", zap.Int64("showtime_id", showtimeID))
	return nil
}
