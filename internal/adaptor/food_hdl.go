package adaptor

import (
	"net/http"

	"cinebook/internal/dto/request"
	"cinebook/internal/usecase"
	"cinebook/pkg/utils"

	"go.uber.org/zap"
)

type FoodItemHandler struct {
	service usecase.FoodItemService
	log     *zap.Logger
}

func NewFoodItemHandler(service usecase.FoodItemService, log *zap.Logger) *FoodItemHandler {
	return &FoodItemHandler{
		service: service,
		log:     log.With(zap.String("handler", "food_item")),
	}
}

// GetFoodItems handles GET /api/food-items?search=&category=&available=&limit=&offset=
func (h *FoodItemHandler) GetFoodItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	available, err := utils.ParseOptionalBool(query.Get("available"))
	if err != nil {
		handleServiceError(w, h.log, err, "get food items")
		return
	}

	req := &request.FoodItemListRequest{
		PaginatedRequest: request.PaginationFromQuery(query),
		Search:           query.Get("search"),
		Category:         query.Get("category"),
		Available:        available,
	}

	items, err := h.service.GetFoodItems(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get food items")
		return
	}

	utils.ResponseSuccess(w, "Food items retrieved successfully", items)
}

// GetFoodItemByID handles GET /api/food-items/{id}
func (h *FoodItemHandler) GetFoodItemByID(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "get food item")
		return
	}

	item, err := h.service.GetFoodItemByID(r.Context(), itemID)
	if err != nil {
		handleServiceError(w, h.log, err, "get food item")
		return
	}

	utils.ResponseSuccess(w, "Food item retrieved successfully", item)
}

// CreateFoodItem handles POST /api/admin/food-items
func (h *FoodItemHandler) CreateFoodItem(w http.ResponseWriter, r *http.Request) {
	var req request.FoodItemRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create food item")
		return
	}

	item, err := h.service.CreateFoodItem(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create food item")
		return
	}

	utils.ResponseCreated(w, "Food item created successfully", item)
}

// UpdateFoodItem handles PUT /api/admin/food-items/{id}
func (h *FoodItemHandler) UpdateFoodItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "update food item")
		return
	}

	var req request.FoodItemUpdateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "update food item")
		return
	}

	item, err := h.service.UpdateFoodItem(r.Context(), itemID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update food item")
		return
	}

	utils.ResponseSuccess(w, "Food item updated successfully", item)
}

// DeleteFoodItem handles DELETE /api/admin/food-items/{id}
func (h *FoodItemHandler) DeleteFoodItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		handleServiceError(w, h.log, err, "delete food item")
		return
	}

	if err := h.service.DeleteFoodItem(r.Context(), itemID); err != nil {
		handleServiceError(w, h.log, err, "delete food item")
		return
	}

	utils.ResponseSuccess(w, "Food item deleted successfully", nil)
}
