package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"cinebook/internal/data/entity"
	"cinebook/internal/data/repository"
	"cinebook/internal/dto/request"
	"cinebook/internal/dto/response"
	"cinebook/pkg/messaging"
	"cinebook/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Customer endpoints
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingDetailResponse, error)
	GetBooking(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingDetailResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	CancelBooking(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingResponse, error)
	GetPaymentMethods(ctx context.Context) []response.PaymentMethodResponse

	// Admin endpoints
	GetAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo      *repository.Repository // grouping all booking-related repos
	drafts    repository.DraftRepository
	publisher messaging.Publisher
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, drafts repository.DraftRepository, publisher messaging.Publisher, log *zap.Logger) BookingService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		drafts:    drafts,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

// selection is a showtime, its chosen seats and food quantities.
type selection struct {
	ShowtimeID int64
	SeatIDs    []int64
	Food       map[int64]int
}

// resolved is a selection checked against the catalog and priced.
type resolved struct {
	Showtime *entity.Showtime
	Seats    []*entity.Seat
	Quote    entity.Quote
}

func (s *bookingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewValidationError(errs)
	}

	sel := selection{ShowtimeID: req.ShowtimeID, SeatIDs: req.SeatIDs, Food: req.Food}
	if err := validateSelection(sel); err != nil {
		return nil, err
	}

	res, err := s.resolve(ctx, s.repo, sel)
	if err != nil {
		return nil, err
	}

	resp := response.QuoteToResponse(res.Quote)
	return &resp, nil
}

// CreateBooking confirms a selection for userID. The booking row, the seat
// flips, the line items and the counter update commit together; a seat taken
// by a concurrent booking aborts everything with SEAT_ALREADY_BOOKED.
func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingDetailResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	sel := selection{ShowtimeID: req.ShowtimeID, SeatIDs: req.SeatIDs, Food: req.Food}
	if err := validateSelection(sel); err != nil {
		return nil, err
	}

	method := entity.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, utils.NewInvalidError(utils.CodeInvalidPayment, "Payment method must be one of: card, upi, wallet, cash")
	}

	var (
		booking *entity.Booking
		res     *resolved
	)

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		// 2. Resolve showtime, seats and food, and price them
		var err error
		res, err = s.resolve(ctx, tx, sel)
		if err != nil {
			return err
		}

		// 3. Booking row
		now := time.Now()
		booking = &entity.Booking{
			Base:          entity.Base{CreatedAt: now},
			UserID:        userID,
			ShowtimeID:    res.Showtime.ID,
			TotalSeats:    len(res.Seats),
			TotalAmount:   res.Quote.Total,
			BookingDate:   now,
			Status:        entity.BookingStatusConfirmed,
			PaymentMethod: method,
			UpdatedAt:     now,
		}
		if err := tx.Booking.Create(ctx, booking); err != nil {
			return err
		}

		// 4. Flip each seat only if it is still free
		bookingSeats := make([]*entity.BookingSeat, 0, len(res.Seats))
		for _, seat := range res.Seats {
			ok, err := tx.Seat.MarkBooked(ctx, seat.ID, res.Showtime.ID, booking.ID)
			if err != nil {
				return err
			}
			if !ok {
				return seatTakenError(seat)
			}
			seat.IsBooked = true
			seat.BookingID = &booking.ID

			bookingSeats = append(bookingSeats, &entity.BookingSeat{
				Base:      entity.Base{CreatedAt: now},
				BookingID: booking.ID,
				SeatID:    seat.ID,
			})
		}
		if err := tx.BookingSeat.CreateBatch(ctx, bookingSeats); err != nil {
			return err
		}

		// 5. Food lines
		foodLines := make([]*entity.BookingFood, 0, len(res.Quote.Lines))
		for _, line := range res.Quote.Lines {
			foodLines = append(foodLines, &entity.BookingFood{
				Base:       entity.Base{CreatedAt: now},
				BookingID:  booking.ID,
				FoodItemID: line.FoodItemID,
				Quantity:   line.Quantity,
			})
		}
		if err := tx.BookingFood.CreateBatch(ctx, foodLines); err != nil {
			return err
		}

		// 6. Keep the showtime counter in step with the seats
		return tx.Showtime.AdjustAvailableSeats(ctx, res.Showtime.ID, -len(res.Seats))
	})
	if err != nil {
		if _, ok := utils.AsAppError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking confirmed",
		zap.Int64("booking_id", booking.ID),
		zap.String("user_id", userID.String()),
		zap.Int64("showtime_id", booking.ShowtimeID),
		zap.Int("seats", booking.TotalSeats),
		zap.Int64("total_amount", booking.TotalAmount),
	)

	s.publish(ctx, newBookingEvent(EventBookingConfirmed, booking, seatIDsOf(res.Seats)))
	s.clearDraft(ctx, userID)

	res.Showtime.AvailableSeats -= len(res.Seats)

	foodLines := make([]*entity.BookingFoodLine, 0, len(res.Quote.Lines))
	for _, line := range res.Quote.Lines {
		foodLines = append(foodLines, &entity.BookingFoodLine{
			BookingFood: entity.BookingFood{BookingID: booking.ID, FoodItemID: line.FoodItemID, Quantity: line.Quantity},
			Name:        line.Name,
			Price:       line.UnitPrice,
		})
	}

	resp := response.BookingToDetailResponse(booking, &entity.ShowtimeWithMovie{Showtime: *res.Showtime}, res.Seats, foodLines)
	return &resp, nil
}

// GetBooking returns a booking with its seats and food. Bookings of other
// users are reported as not found unless the caller is an admin.
func (s *bookingService) GetBooking(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingDetailResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil || (!isAdmin && booking.UserID != userID) {
		return nil, utils.NewNotFoundError(utils.CodeBookingNotFound, "Booking not found")
	}

	showtime, err := s.repo.Showtime.FindByIDWithMovie(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("get booking showtime: %w", err)
	}

	seats, err := s.repo.BookingSeat.FindSeatsByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("get booking seats: %w", err)
	}

	food, err := s.repo.BookingFood.FindLinesByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("get booking food: %w", err)
	}

	resp := response.BookingToDetailResponse(booking, showtime, seats, food)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit, offset := req.Limit(), req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), limit, offset, total), nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	filter := entity.BookingFilter{Limit: req.Limit(), Offset: req.Offset()}

	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		if status != entity.BookingStatusConfirmed && status != entity.BookingStatusCancelled {
			return nil, utils.NewInvalidError(utils.CodeValidationFailed, "status must be confirmed or cancelled")
		}
		filter.Status = &status
	}
	if req.UserID != "" {
		uid, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, utils.NewInvalidError(utils.CodeInvalidID, "user_id must be a UUID")
		}
		filter.UserID = &uid
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), filter.Limit, filter.Offset, total), nil
}

// CancelBooking marks the booking cancelled and frees its seats. The seats
// keep their booking_id as a trace of the last holder.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID int64, userID uuid.UUID, isAdmin bool) (*response.BookingResponse, error) {
	var (
		booking *entity.Booking
		seatIDs []int64
	)

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		var err error
		booking, err = tx.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil || (!isAdmin && booking.UserID != userID) {
			return utils.NewNotFoundError(utils.CodeBookingNotFound, "Booking not found")
		}
		if booking.Status == entity.BookingStatusCancelled {
			return utils.NewConflictError(utils.CodeBookingCancelled, "Booking is already cancelled")
		}

		updated, err := tx.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed, entity.BookingStatusCancelled)
		if err != nil {
			return err
		}
		if !updated {
			return utils.NewConflictError(utils.CodeBookingCancelled, "Booking is already cancelled")
		}
		booking.Status = entity.BookingStatusCancelled
		booking.UpdatedAt = time.Now()

		links, err := tx.BookingSeat.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return err
		}
		seatIDs = make([]int64, 0, len(links))
		for _, link := range links {
			seatIDs = append(seatIDs, link.SeatID)
		}

		released, err := tx.Seat.Release(ctx, seatIDs, booking.ID)
		if err != nil {
			return err
		}
		if released > 0 {
			return tx.Showtime.AdjustAvailableSeats(ctx, booking.ShowtimeID, int(released))
		}
		return nil
	})
	if err != nil {
		if _, ok := utils.AsAppError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	s.log.Info("Booking cancelled",
		zap.Int64("booking_id", booking.ID),
		zap.String("by_user", userID.String()),
		zap.Int("seats_released", len(seatIDs)),
	)

	s.publish(ctx, newBookingEvent(EventBookingCancelled, booking, seatIDs))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetPaymentMethods(ctx context.Context) []response.PaymentMethodResponse {
	return response.PaymentMethodsToResponse(entity.PaymentMethods)
}

// ==================== HELPER METHODS ====================

// validateSelection checks the parts of a selection that need no lookups.
func validateSelection(sel selection) error {
	if len(sel.SeatIDs) == 0 {
		return utils.NewInvalidError(utils.CodeNoSeats, "At least one seat must be selected")
	}

	seen := make(map[int64]struct{}, len(sel.SeatIDs))
	for _, id := range sel.SeatIDs {
		if id <= 0 {
			return utils.NewInvalidError(utils.CodeInvalidID, "Seat IDs must be positive")
		}
		if _, dup := seen[id]; dup {
			return utils.NewInvalidError(utils.CodeDuplicateSeat, fmt.Sprintf("Seat %d is selected more than once", id))
		}
		seen[id] = struct{}{}
	}

	for id, qty := range sel.Food {
		if id <= 0 {
			return utils.NewInvalidError(utils.CodeInvalidID, "Food item IDs must be positive")
		}
		if qty < 1 || qty > MaxFoodQuantity {
			return utils.NewInvalidError(utils.CodeInvalidQuantity,
				fmt.Sprintf("Quantity for food item %d must be between 1 and %d", id, MaxFoodQuantity))
		}
	}

	return nil
}

// resolve loads the showtime, seats and food items of a selection through r
// and prices it. Seats are returned in ascending id order so concurrent
// bookings lock rows in the same order.
func (s *bookingService) resolve(ctx context.Context, r *repository.Repository, sel selection) (*resolved, error) {
	showtime, err := r.Showtime.FindByID(ctx, sel.ShowtimeID)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, utils.NewNotFoundError(utils.CodeShowtimeNotFound, "Showtime not found")
	}

	seats, err := r.Seat.FindByIDs(ctx, sel.SeatIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*entity.Seat, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat
	}

	ordered := make([]*entity.Seat, 0, len(sel.SeatIDs))
	for _, id := range sortedIDs(sel.SeatIDs) {
		seat, ok := byID[id]
		if !ok {
			return nil, utils.NewNotFoundError(utils.CodeSeatNotFound, fmt.Sprintf("Seat %d not found", id))
		}
		if seat.ShowtimeID != showtime.ID {
			return nil, utils.NewInvalidError(utils.CodeSeatNotInShowtime,
				fmt.Sprintf("Seat %d does not belong to showtime %d", id, showtime.ID))
		}
		if seat.IsBooked {
			return nil, seatTakenError(seat)
		}
		ordered = append(ordered, seat)
	}

	foodIDs := make([]int64, 0, len(sel.Food))
	for id := range sel.Food {
		foodIDs = append(foodIDs, id)
	}
	items, err := r.FoodItem.FindByIDs(ctx, foodIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[int64]*entity.FoodItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	lines := make([]entity.QuoteLine, 0, len(foodIDs))
	for _, id := range sortedIDs(foodIDs) {
		item, ok := itemsByID[id]
		if !ok {
			return nil, utils.NewNotFoundError(utils.CodeFoodItemNotFound, fmt.Sprintf("Food item %d not found", id))
		}
		if !item.Available {
			return nil, utils.NewInvalidError(utils.CodeFoodUnavailable, fmt.Sprintf("%s is not available", item.Name))
		}
		lines = append(lines, entity.QuoteLine{
			FoodItemID: item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   sel.Food[id],
		})
	}

	return &resolved{
		Showtime: showtime,
		Seats:    ordered,
		Quote:    Price(len(ordered), showtime.Price, lines),
	}, nil
}

func (s *bookingService) clearDraft(ctx context.Context, userID uuid.UUID) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.Delete(ctx, userID); err != nil {
		s.log.Warn("Failed to clear draft after booking", zap.Error(err), zap.String("user_id", userID.String()))
	}
}

func seatTakenError(seat *entity.Seat) error {
	return utils.NewConflictError(utils.CodeSeatAlreadyBooked,
		"Seat "+seat.Label()+" (id "+strconv.FormatInt(seat.ID, 10)+") is already booked")
}

func seatIDsOf(seats []*entity.Seat) []int64 {
	ids := make([]int64, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.ID)
	}
	return ids
}

func sortedIDs(ids []int64) []int64 {
	out := append([]int64(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
