package usecase

import (
	"fmt"

	"cinebook/internal/data/entity"
	"cinebook/pkg/utils"
)

type DraftActionType string

const (
	ActionSetShowtime      DraftActionType = "set_showtime"
	ActionToggleSeat       DraftActionType = "toggle_seat"
	ActionSetSeats         DraftActionType = "set_seats"
	ActionSetFoodQuantity  DraftActionType = "set_food_quantity"
	ActionSetPaymentMethod DraftActionType = "set_payment_method"
	ActionClear            DraftActionType = "clear"
)

// DraftAction is one change to a booking draft. Only the fields relevant to
// Type are read.
type DraftAction struct {
	Type          DraftActionType
	ShowtimeID    *int64
	SeatID        *int64
	SeatIDs       []int64
	FoodItemID    *int64
	Quantity      *int
	PaymentMethod *string
}

// ReduceDraft returns the draft that results from applying action to state.
// It never mutates state; on error the caller keeps the old draft.
func ReduceDraft(state entity.BookingDraft, action DraftAction) (entity.BookingDraft, error) {
	next := cloneDraft(state)

	switch action.Type {
	case ActionSetShowtime:
		if action.ShowtimeID == nil || *action.ShowtimeID <= 0 {
			return state, draftFieldError(action.Type, "showtime_id")
		}
		id := *action.ShowtimeID
		next.ShowtimeID = &id
		next.SeatIDs = []int64{}
		next.Food = map[int64]int{}

	case ActionToggleSeat:
		if action.SeatID == nil || *action.SeatID <= 0 {
			return state, draftFieldError(action.Type, "seat_id")
		}
		if next.ShowtimeID == nil {
			return state, utils.NewInvalidError(utils.CodeIncompleteDraft, "Select a showtime before choosing seats")
		}
		next.SeatIDs = toggle(next.SeatIDs, *action.SeatID)

	case ActionSetSeats:
		if next.ShowtimeID == nil {
			return state, utils.NewInvalidError(utils.CodeIncompleteDraft, "Select a showtime before choosing seats")
		}
		seen := make(map[int64]struct{}, len(action.SeatIDs))
		seats := make([]int64, 0, len(action.SeatIDs))
		for _, id := range action.SeatIDs {
			if id <= 0 {
				return state, draftFieldError(action.Type, "seat_ids")
			}
			if _, dup := seen[id]; dup {
				return state, utils.NewInvalidError(utils.CodeDuplicateSeat, fmt.Sprintf("Seat %d is selected more than once", id))
			}
			seen[id] = struct{}{}
			seats = append(seats, id)
		}
		next.SeatIDs = seats

	case ActionSetFoodQuantity:
		if action.FoodItemID == nil || *action.FoodItemID <= 0 {
			return state, draftFieldError(action.Type, "food_item_id")
		}
		if action.Quantity == nil {
			return state, draftFieldError(action.Type, "quantity")
		}
		if *action.Quantity > MaxFoodQuantity {
			return state, utils.NewInvalidError(utils.CodeInvalidQuantity,
				fmt.Sprintf("Quantity for food item %d must be at most %d", *action.FoodItemID, MaxFoodQuantity))
		}
		if *action.Quantity <= 0 {
			delete(next.Food, *action.FoodItemID)
		} else {
			next.Food[*action.FoodItemID] = *action.Quantity
		}

	case ActionSetPaymentMethod:
		if action.PaymentMethod == nil {
			return state, draftFieldError(action.Type, "payment_method")
		}
		method := entity.PaymentMethod(*action.PaymentMethod)
		if !method.Valid() {
			return state, utils.NewInvalidError(utils.CodeInvalidPayment, "Payment method must be one of: card, upi, wallet, cash")
		}
		next.PaymentMethod = method

	case ActionClear:
		next = entity.EmptyDraft()

	default:
		return state, utils.NewInvalidError(utils.CodeInvalidDraftAction, fmt.Sprintf("Unknown draft action %q", action.Type))
	}

	return next, nil
}

func cloneDraft(d entity.BookingDraft) entity.BookingDraft {
	out := entity.BookingDraft{
		PaymentMethod: d.PaymentMethod,
		UpdatedAt:     d.UpdatedAt,
		SeatIDs:       append([]int64{}, d.SeatIDs...),
		Food:          make(map[int64]int, len(d.Food)),
	}
	if d.ShowtimeID != nil {
		id := *d.ShowtimeID
		out.ShowtimeID = &id
	}
	for k, v := range d.Food {
		out.Food[k] = v
	}
	return out
}

func toggle(ids []int64, id int64) []int64 {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}

func draftFieldError(action DraftActionType, field string) error {
	return utils.NewInvalidError(utils.CodeInvalidDraftAction, fmt.Sprintf("%s requires a valid %s", action, field))
}
