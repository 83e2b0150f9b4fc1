package response

import (
	"sort"
	"time"

	"cinebook/internal/data/entity"
)

type DraftFoodResponse struct {
	FoodItemID int64 `json:"food_item_id"`
	Quantity   int   `json:"quantity"`
}

type DraftResponse struct {
	ShowtimeID    *int64               `json:"showtime_id"`
	SeatIDs       []int64              `json:"seat_ids"`
	Food          []DraftFoodResponse  `json:"food"`
	PaymentMethod entity.PaymentMethod `json:"payment_method,omitempty"`
	UpdatedAt     *time.Time           `json:"updated_at,omitempty"`
}

// DraftToResponse lists food lines by item id so the output is stable.
func DraftToResponse(d entity.BookingDraft) DraftResponse {
	resp := DraftResponse{
		ShowtimeID:    d.ShowtimeID,
		SeatIDs:       d.SeatIDs,
		Food:          make([]DraftFoodResponse, 0, len(d.Food)),
		PaymentMethod: d.PaymentMethod,
	}
	if resp.SeatIDs == nil {
		resp.SeatIDs = []int64{}
	}
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		resp.UpdatedAt = &t
	}

	for id, qty := range d.Food {
		resp.Food = append(resp.Food, DraftFoodResponse{FoodItemID: id, Quantity: qty})
	}
	sort.Slice(resp.Food, func(i, j int) bool { return resp.Food[i].FoodItemID < resp.Food[j].FoodItemID })

	return resp
}
