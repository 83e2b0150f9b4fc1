package request

type FoodItemRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price       int64   `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required,max=50"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
	Available   *bool   `json:"available,omitempty"`
}

type FoodItemUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=1,max=50"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
	Available   *bool   `json:"available,omitempty"`
}

type FoodItemListRequest struct {
	PaginatedRequest
	Search    string
	Category  string
	Available *bool
}
