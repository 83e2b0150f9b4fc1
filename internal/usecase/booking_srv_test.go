package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"cinebook/internal/data/entity"
	"cinebook/internal/dto/request"
	"cinebook/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	store  *memStore
	drafts *memDrafts
	events *recordingPublisher
	svc    BookingService
}

func newBookingFixture() *bookingFixture {
	store := newMemStore()
	seedCinema(store)
	drafts := newMemDrafts()
	events := &recordingPublisher{}

	return &bookingFixture{
		store:  store,
		drafts: drafts,
		events: events,
		svc:    NewBookingService(store.repository(), drafts, events, zap.NewNop()),
	}
}

func twoSeatsTwoPopcorn() *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ShowtimeID:    1,
		SeatIDs:       []int64{2, 1},
		Food:          map[int64]int{1: 2},
		PaymentMethod: "card",
	}
}

func TestBookingService_Quote_TicketsPlusFood(t *testing.T) {
	f := newBookingFixture()

	quote, err := f.svc.Quote(context.Background(), &request.QuoteRequest{
		ShowtimeID: 1,
		SeatIDs:    []int64{1, 2},
		Food:       map[int64]int{1: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2400), quote.TicketSubtotal)
	assert.Equal(t, int64(1000), quote.FoodSubtotal)
	assert.Equal(t, int64(3400), quote.Total)
	require.Len(t, quote.Lines, 1)
	assert.Equal(t, "Popcorn", quote.Lines[0].Name)

	// Quoting never books anything.
	assert.False(t, f.store.seats[1].IsBooked)
	assert.Empty(t, f.store.bookings)
}

func TestBookingService_Quote_RejectsHugeQuantity(t *testing.T) {
	f := newBookingFixture()

	quote, err := f.svc.Quote(context.Background(), &request.QuoteRequest{
		ShowtimeID: 1,
		SeatIDs:    []int64{1},
		Food:       map[int64]int{1: math.MaxInt/500 + 1},
	})

	assert.Nil(t, quote)
	requireAppError(t, err, utils.KindInvalid, utils.CodeInvalidQuantity)
}

func TestBookingService_Quote_LargestQuantity(t *testing.T) {
	f := newBookingFixture()

	quote, err := f.svc.Quote(context.Background(), &request.QuoteRequest{
		ShowtimeID: 1,
		SeatIDs:    []int64{1},
		Food:       map[int64]int{1: MaxFoodQuantity},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1200+500*MaxFoodQuantity), quote.Total)
}

func TestBookingService_CreateBooking_RoundTrip(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, f.drafts.Save(ctx, userID, &entity.BookingDraft{SeatIDs: []int64{1}}))

	created, err := f.svc.CreateBooking(ctx, userID, twoSeatsTwoPopcorn())

	require.NoError(t, err)
	assert.Equal(t, int64(3400), created.TotalAmount)
	assert.Equal(t, 2, created.TotalSeats)
	assert.Equal(t, entity.BookingStatusConfirmed, created.Status)
	assert.Equal(t, 2, created.Showtime.AvailableSeats)

	// Seats are flipped and linked, and the counter follows.
	for _, id := range []int64{1, 2} {
		assert.True(t, f.store.seats[id].IsBooked)
		assert.Equal(t, created.ID, *f.store.seats[id].BookingID)
	}
	assert.False(t, f.store.seats[3].IsBooked)
	assert.Equal(t, 2, f.store.showtimes[1].AvailableSeats)

	assert.Equal(t, []string{EventBookingConfirmed}, f.events.keys())
	draft, _ := f.drafts.Get(ctx, userID)
	assert.Nil(t, draft, "draft is cleared after booking")

	fetched, err := f.svc.GetBooking(ctx, created.ID, userID, false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.TotalAmount, fetched.TotalAmount)
	require.Len(t, fetched.Seats, 2)
	assert.Equal(t, "A1", fetched.Seats[0].Label)
	assert.Equal(t, "A2", fetched.Seats[1].Label)
	require.Len(t, fetched.Food, 1)
	assert.Equal(t, 2, fetched.Food[0].Quantity)
	require.NotNil(t, fetched.Showtime.Movie)
	assert.Equal(t, "Heat", fetched.Showtime.Movie.Title)
}

func TestBookingService_CreateBooking_RejectsBookedSeat(t *testing.T) {
	f := newBookingFixture()
	f.store.seats[2].IsBooked = true

	_, err := f.svc.CreateBooking(context.Background(), uuid.New(), twoSeatsTwoPopcorn())

	requireAppError(t, err, utils.KindConflict, utils.CodeSeatAlreadyBooked)
	assert.Empty(t, f.store.bookings)
	assert.False(t, f.store.seats[1].IsBooked)
	assert.Empty(t, f.events.keys())
}

func TestBookingService_CreateBooking_SeatTakenMidFlight(t *testing.T) {
	f := newBookingFixture()
	f.store.markBookedFn = func(seatID int64) bool { return seatID != 2 }

	_, err := f.svc.CreateBooking(context.Background(), uuid.New(), twoSeatsTwoPopcorn())

	requireAppError(t, err, utils.KindConflict, utils.CodeSeatAlreadyBooked)
	assert.Contains(t, err.Error(), "A2")
	assert.Empty(t, f.events.keys())
}

func TestBookingService_CreateBooking_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  request.CreateBookingRequest
		kind utils.ErrorKind
		code string
	}{
		{
			name: "no seats",
			req:  request.CreateBookingRequest{ShowtimeID: 1, PaymentMethod: "card"},
			kind: utils.KindInvalid, code: utils.CodeNoSeats,
		},
		{
			name: "duplicate seat",
			req:  request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1, 1}, PaymentMethod: "card"},
			kind: utils.KindInvalid, code: utils.CodeDuplicateSeat,
		},
		{
			name: "zero quantity",
			req:  request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1}, Food: map[int64]int{1: 0}, PaymentMethod: "card"},
			kind: utils.KindInvalid, code: utils.CodeInvalidQuantity,
		},
		{
			name: "quantity over limit",
			req:  request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1}, Food: map[int64]int{1: MaxFoodQuantity + 1}, PaymentMethod: "card"},
			kind: utils.KindInvalid, code: utils.CodeInvalidQuantity,
		},
		{
			name: "unknown payment method",
			req:  request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1}, PaymentMethod: "bitcoin"},
			kind: utils.KindInvalid, code: utils.CodeInvalidPayment,
		},
		{
			name: "missing showtime",
			req:  request.CreateBookingRequest{ShowtimeID: 77, SeatIDs: []int64{1}, PaymentMethod: "cash"},
			kind: utils.KindNotFound, code: utils.CodeShowtimeNotFound,
		},
		{
			name: "missing seat",
			req:  request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1, 55}, PaymentMethod: "cash"},
			kind: utils.KindNotFound, code: utils.CodeSeatNotFound,
		},
		{
			name: "seat of another showtime",
			req:  request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{9}, PaymentMethod: "upi"},
			kind: utils.KindInvalid, code: utils.CodeSeatNotInShowtime,
		},
		{
			name: "missing food item",
			req:  request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1}, Food: map[int64]int{8: 1}, PaymentMethod: "wallet"},
			kind: utils.KindNotFound, code: utils.CodeFoodItemNotFound,
		},
		{
			name: "unavailable food item",
			req:  request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1}, Food: map[int64]int{2: 1}, PaymentMethod: "wallet"},
			kind: utils.KindInvalid, code: utils.CodeFoodUnavailable,
		},
		{
			name: "missing showtime id",
			req:  request.CreateBookingRequest{SeatIDs: []int64{1}, PaymentMethod: "card"},
			kind: utils.KindInvalid, code: utils.CodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()

			resp, err := f.svc.CreateBooking(context.Background(), uuid.New(), &tt.req)

			assert.Nil(t, resp)
			requireAppError(t, err, tt.kind, tt.code)
			assert.Empty(t, f.store.bookings)
		})
	}
}

func TestBookingService_CreateBooking_PublishFailureKeepsBooking(t *testing.T) {
	f := newBookingFixture()
	f.events.err = errors.New("broker down")

	created, err := f.svc.CreateBooking(context.Background(), uuid.New(), twoSeatsTwoPopcorn())

	require.NoError(t, err)
	assert.Contains(t, f.store.bookings, created.ID)
}

func TestBookingService_GetBooking_HiddenFromOtherUsers(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	owner := uuid.New()

	created, err := f.svc.CreateBooking(ctx, owner, twoSeatsTwoPopcorn())
	require.NoError(t, err)

	_, err = f.svc.GetBooking(ctx, created.ID, uuid.New(), false)
	requireAppError(t, err, utils.KindNotFound, utils.CodeBookingNotFound)

	asAdmin, err := f.svc.GetBooking(ctx, created.ID, uuid.New(), true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, asAdmin.ID)
}

func TestBookingService_CancelBooking_ReleasesSeats(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	userID := uuid.New()

	created, err := f.svc.CreateBooking(ctx, userID, twoSeatsTwoPopcorn())
	require.NoError(t, err)

	cancelled, err := f.svc.CancelBooking(ctx, created.ID, userID, false)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)
	for _, id := range []int64{1, 2} {
		assert.False(t, f.store.seats[id].IsBooked)
		require.NotNil(t, f.store.seats[id].BookingID, "booking link is kept after cancel")
		assert.Equal(t, created.ID, *f.store.seats[id].BookingID)
	}
	assert.Equal(t, 4, f.store.showtimes[1].AvailableSeats)
	assert.Equal(t, []string{EventBookingConfirmed, EventBookingCancelled}, f.events.keys())
}

func TestBookingService_CancelBooking_LeavesRebookedSeat(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()
	seats := NewSeatService(f.store.repository(), zap.NewNop())

	old, err := f.svc.CreateBooking(ctx, first, &request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1}, PaymentMethod: "card"})
	require.NoError(t, err)
	_, err = seats.UpdateSeat(ctx, 1, &request.SeatUpdateRequest{IsBooked: ptr(false)})
	require.NoError(t, err)
	current, err := f.svc.CreateBooking(ctx, second, &request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1}, PaymentMethod: "card"})
	require.NoError(t, err)
	require.Equal(t, 3, f.store.showtimes[1].AvailableSeats)

	_, err = f.svc.CancelBooking(ctx, old.ID, first, false)

	require.NoError(t, err)
	assert.True(t, f.store.seats[1].IsBooked, "seat stays with the newer booking")
	assert.Equal(t, current.ID, *f.store.seats[1].BookingID)
	assert.Equal(t, 3, f.store.showtimes[1].AvailableSeats)
}

func TestBookingService_CancelBooking_OtherUser(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	created, err := f.svc.CreateBooking(ctx, uuid.New(), twoSeatsTwoPopcorn())
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(ctx, created.ID, uuid.New(), false)

	requireAppError(t, err, utils.KindNotFound, utils.CodeBookingNotFound)
	assert.Equal(t, entity.BookingStatusConfirmed, f.store.bookings[created.ID].Status)
	assert.True(t, f.store.seats[1].IsBooked)
}

func TestBookingService_CancelBooking_AdminCancelsAnyBooking(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	created, err := f.svc.CreateBooking(ctx, uuid.New(), twoSeatsTwoPopcorn())
	require.NoError(t, err)

	cancelled, err := f.svc.CancelBooking(ctx, created.ID, uuid.New(), true)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)
}

func TestBookingService_CancelBooking_Twice(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	userID := uuid.New()

	created, err := f.svc.CreateBooking(ctx, userID, twoSeatsTwoPopcorn())
	require.NoError(t, err)
	_, err = f.svc.CancelBooking(ctx, created.ID, userID, false)
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(ctx, created.ID, userID, false)

	requireAppError(t, err, utils.KindConflict, utils.CodeBookingCancelled)
	assert.Equal(t, 4, f.store.showtimes[1].AvailableSeats)
}

func TestBookingService_GetUserBookings_CapsLimit(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	userID := uuid.New()

	_, err := f.svc.CreateBooking(ctx, userID, &request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{1}, PaymentMethod: "cash"})
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, userID, &request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{2}, PaymentMethod: "cash"})
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, uuid.New(), &request.CreateBookingRequest{ShowtimeID: 1, SeatIDs: []int64{3}, PaymentMethod: "cash"})
	require.NoError(t, err)

	page, err := f.svc.GetUserBookings(ctx, userID, &request.PaginatedRequest{PageLimit: 500})

	require.NoError(t, err)
	assert.Equal(t, 100, page.Pagination.Limit)
	assert.Equal(t, int64(2), page.Pagination.Total)
	require.Len(t, page.Data, 2)
	assert.Greater(t, page.Data[0].ID, page.Data[1].ID, "newest first")
}

func TestBookingService_GetPaymentMethods(t *testing.T) {
	f := newBookingFixture()

	methods := f.svc.GetPaymentMethods(context.Background())

	codes := make([]string, 0, len(methods))
	for _, m := range methods {
		codes = append(codes, string(m.Code))
		assert.NotEmpty(t, m.Name)
	}
	assert.Equal(t, []string{"card", "upi", "wallet", "cash"}, codes)
}
