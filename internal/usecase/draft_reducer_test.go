package usecase

import (
	"testing"
	"time"

	"cinebook/internal/data/entity"
	"cinebook/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func draftWithShowtime(id int64) entity.BookingDraft {
	d := entity.EmptyDraft()
	d.ShowtimeID = ptr(id)
	return d
}

func TestReduceDraft_SetShowtimeResetsSelection(t *testing.T) {
	state := draftWithShowtime(1)
	state.SeatIDs = []int64{3, 4}
	state.Food = map[int64]int{1: 2}
	state.PaymentMethod = entity.PaymentUPI

	next, err := ReduceDraft(state, DraftAction{Type: ActionSetShowtime, ShowtimeID: ptr(int64(2))})

	require.NoError(t, err)
	require.NotNil(t, next.ShowtimeID)
	assert.Equal(t, int64(2), *next.ShowtimeID)
	assert.Empty(t, next.SeatIDs)
	assert.Empty(t, next.Food)
	assert.Equal(t, entity.PaymentUPI, next.PaymentMethod, "payment method survives a showtime change")
}

func TestReduceDraft_ToggleSeat(t *testing.T) {
	state := draftWithShowtime(1)

	added, err := ReduceDraft(state, DraftAction{Type: ActionToggleSeat, SeatID: ptr(int64(5))})
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, added.SeatIDs)

	added, err = ReduceDraft(added, DraftAction{Type: ActionToggleSeat, SeatID: ptr(int64(6))})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6}, added.SeatIDs)

	removed, err := ReduceDraft(added, DraftAction{Type: ActionToggleSeat, SeatID: ptr(int64(5))})
	require.NoError(t, err)
	assert.Equal(t, []int64{6}, removed.SeatIDs)
	assert.Equal(t, []int64{5, 6}, added.SeatIDs, "previous state is not mutated")
}

func TestReduceDraft_SeatsNeedShowtime(t *testing.T) {
	state := entity.EmptyDraft()

	_, err := ReduceDraft(state, DraftAction{Type: ActionToggleSeat, SeatID: ptr(int64(1))})
	requireAppError(t, err, utils.KindInvalid, utils.CodeIncompleteDraft)

	_, err = ReduceDraft(state, DraftAction{Type: ActionSetSeats, SeatIDs: []int64{1}})
	requireAppError(t, err, utils.KindInvalid, utils.CodeIncompleteDraft)
}

func TestReduceDraft_SetSeats(t *testing.T) {
	state := draftWithShowtime(1)
	state.SeatIDs = []int64{9}

	next, err := ReduceDraft(state, DraftAction{Type: ActionSetSeats, SeatIDs: []int64{3, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, next.SeatIDs)

	_, err = ReduceDraft(state, DraftAction{Type: ActionSetSeats, SeatIDs: []int64{3, 3}})
	requireAppError(t, err, utils.KindInvalid, utils.CodeDuplicateSeat)

	_, err = ReduceDraft(state, DraftAction{Type: ActionSetSeats, SeatIDs: []int64{0}})
	requireAppError(t, err, utils.KindInvalid, utils.CodeInvalidDraftAction)

	cleared, err := ReduceDraft(state, DraftAction{Type: ActionSetSeats})
	require.NoError(t, err)
	assert.Empty(t, cleared.SeatIDs)
}

func TestReduceDraft_SetFoodQuantity(t *testing.T) {
	state := entity.EmptyDraft()

	next, err := ReduceDraft(state, DraftAction{Type: ActionSetFoodQuantity, FoodItemID: ptr(int64(1)), Quantity: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 3}, next.Food)
	assert.Empty(t, state.Food, "previous state is not mutated")

	next, err = ReduceDraft(next, DraftAction{Type: ActionSetFoodQuantity, FoodItemID: ptr(int64(1)), Quantity: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 1}, next.Food)

	next, err = ReduceDraft(next, DraftAction{Type: ActionSetFoodQuantity, FoodItemID: ptr(int64(1)), Quantity: ptr(0)})
	require.NoError(t, err)
	assert.Empty(t, next.Food)

	_, err = ReduceDraft(next, DraftAction{Type: ActionSetFoodQuantity, FoodItemID: ptr(int64(1))})
	requireAppError(t, err, utils.KindInvalid, utils.CodeInvalidDraftAction)
}

func TestReduceDraft_SetPaymentMethod(t *testing.T) {
	state := entity.EmptyDraft()

	next, err := ReduceDraft(state, DraftAction{Type: ActionSetPaymentMethod, PaymentMethod: ptr("wallet")})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentWallet, next.PaymentMethod)

	_, err = ReduceDraft(state, DraftAction{Type: ActionSetPaymentMethod, PaymentMethod: ptr("cheque")})
	requireAppError(t, err, utils.KindInvalid, utils.CodeInvalidPayment)
}

func TestReduceDraft_Clear(t *testing.T) {
	state := draftWithShowtime(1)
	state.SeatIDs = []int64{1}
	state.Food = map[int64]int{2: 1}
	state.PaymentMethod = entity.PaymentCash
	state.UpdatedAt = time.Now()

	next, err := ReduceDraft(state, DraftAction{Type: ActionClear})

	require.NoError(t, err)
	assert.Nil(t, next.ShowtimeID)
	assert.Empty(t, next.SeatIDs)
	assert.Empty(t, next.Food)
	assert.Empty(t, next.PaymentMethod)
	require.NotNil(t, state.ShowtimeID)
}

func TestReduceDraft_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		action DraftAction
		code   string
	}{
		{"unknown type", DraftAction{Type: "book_everything"}, utils.CodeInvalidDraftAction},
		{"showtime missing id", DraftAction{Type: ActionSetShowtime}, utils.CodeInvalidDraftAction},
		{"showtime non positive", DraftAction{Type: ActionSetShowtime, ShowtimeID: ptr(int64(-1))}, utils.CodeInvalidDraftAction},
		{"toggle missing seat", DraftAction{Type: ActionToggleSeat}, utils.CodeInvalidDraftAction},
		{"food missing item", DraftAction{Type: ActionSetFoodQuantity, Quantity: ptr(1)}, utils.CodeInvalidDraftAction},
		{"payment missing", DraftAction{Type: ActionSetPaymentMethod}, utils.CodeInvalidDraftAction},
		{"food quantity over limit", DraftAction{Type: ActionSetFoodQuantity, FoodItemID: ptr(int64(1)), Quantity: ptr(MaxFoodQuantity + 1)}, utils.CodeInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := draftWithShowtime(1)
			state.SeatIDs = []int64{2}

			next, err := ReduceDraft(state, tt.action)

			requireAppError(t, err, utils.KindInvalid, tt.code)
			assert.Equal(t, state, next, "rejected actions return the old draft")
		})
	}
}
