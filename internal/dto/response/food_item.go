package response

import (
	"time"

	"cinebook/internal/data/entity"
)

type FoodItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

func FoodItemToResponse(item *entity.FoodItem) FoodItemResponse {
	return FoodItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		ImageURL:    item.ImageURL,
		Available:   item.Available,
		CreatedAt:   item.CreatedAt,
	}
}

func FoodItemsToResponse(items []*entity.FoodItem) []FoodItemResponse {
	out := make([]FoodItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FoodItemToResponse(item))
	}
	return out
}
