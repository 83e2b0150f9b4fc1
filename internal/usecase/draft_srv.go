package usecase

import (
	"context"
	"fmt"
	"time"

	"cinebook/internal/data/entity"
	"cinebook/internal/data/repository"
	"cinebook/internal/dto/request"
	"cinebook/internal/dto/response"
	"cinebook/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DraftService interface {
	GetDraft(ctx context.Context, userID uuid.UUID) (*response.DraftResponse, error)
	ApplyAction(ctx context.Context, userID uuid.UUID, req *request.DraftActionRequest) (*response.DraftResponse, error)
	Checkout(ctx context.Context, userID uuid.UUID) (*response.BookingDetailResponse, error)
}

type draftService struct {
	drafts   repository.DraftRepository
	repo     *repository.Repository
	bookings BookingService
	log      *zap.Logger
}

// NewDraftService builds the draft service. drafts may be nil when Redis is
// not configured; every call then fails with DRAFTS_UNAVAILABLE.
func NewDraftService(drafts repository.DraftRepository, repo *repository.Repository, bookings BookingService, log *zap.Logger) DraftService {
	return &draftService{
		drafts:   drafts,
		repo:     repo,
		bookings: bookings,
		log:      log.With(zap.String("service", "draft")),
	}
}

func (s *draftService) GetDraft(ctx context.Context, userID uuid.UUID) (*response.DraftResponse, error) {
	draft, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.DraftToResponse(draft)
	return &resp, nil
}

func (s *draftService) ApplyAction(ctx context.Context, userID uuid.UUID, req *request.DraftActionRequest) (*response.DraftResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewValidationError(errs)
	}

	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	action := DraftAction{
		Type:          DraftActionType(req.Type),
		ShowtimeID:    req.ShowtimeID,
		SeatID:        req.SeatID,
		SeatIDs:       req.SeatIDs,
		FoodItemID:    req.FoodItemID,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
	}

	if action.Type == ActionSetShowtime && action.ShowtimeID != nil {
		showtime, err := s.repo.Showtime.FindByID(ctx, *action.ShowtimeID)
		if err != nil {
			return nil, fmt.Errorf("get showtime: %w", err)
		}
		if showtime == nil {
			return nil, utils.NewNotFoundError(utils.CodeShowtimeNotFound, "Showtime not found")
		}
	}

	next, err := ReduceDraft(current, action)
	if err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()

	if err := s.drafts.Save(ctx, userID, &next); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.log.Debug("Draft updated",
		zap.String("user_id", userID.String()),
		zap.String("action", req.Type),
	)

	resp := response.DraftToResponse(next)
	return &resp, nil
}

// Checkout confirms the draft as a booking. The booking flow clears the
// draft once the booking has committed.
func (s *draftService) Checkout(ctx context.Context, userID uuid.UUID) (*response.BookingDetailResponse, error) {
	draft, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if draft.ShowtimeID == nil {
		return nil, utils.NewInvalidError(utils.CodeIncompleteDraft, "Draft has no showtime")
	}
	if draft.PaymentMethod == "" {
		return nil, utils.NewInvalidError(utils.CodeIncompleteDraft, "Draft has no payment method")
	}

	return s.bookings.CreateBooking(ctx, userID, &request.CreateBookingRequest{
		ShowtimeID:    *draft.ShowtimeID,
		SeatIDs:       draft.SeatIDs,
		Food:          draft.Food,
		PaymentMethod: string(draft.PaymentMethod),
	})
}

// load returns the stored draft or an empty one.
func (s *draftService) load(ctx context.Context, userID uuid.UUID) (entity.BookingDraft, error) {
	if s.drafts == nil {
		return entity.BookingDraft{}, utils.NewUnavailableError(utils.CodeDraftsUnavailable, "Booking drafts are unavailable")
	}

	draft, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return entity.BookingDraft{}, fmt.Errorf("load draft: %w", err)
	}
	if draft == nil {
		return entity.EmptyDraft(), nil
	}
	if draft.Food == nil {
		draft.Food = map[int64]int{}
	}
	return *draft, nil
}
