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

type FoodItemService interface {
	GetFoodItems(ctx context.Context, req *request.FoodItemListRequest) (*response.PaginatedResponse[response.FoodItemResponse], error)
	GetFoodItemByID(ctx context.Context, itemID int64) (*response.FoodItemResponse, error)
	CreateFoodItem(ctx context.Context, req *request.FoodItemRequest) (*response.FoodItemResponse, error)
	UpdateFoodItem(ctx context.Context, itemID int64, req *request.FoodItemUpdateRequest) (*response.FoodItemResponse, error)
	DeleteFoodItem(ctx context.Context, itemID int64) error
}

type foodItemService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFoodItemService(repo *repository.Repository, log *zap.Logger) FoodItemService {
	return &foodItemService{
		repo: repo,
		log:  log.With(zap.String("service", "food_item")),
	}
}

func (s *foodItemService) GetFoodItems(ctx context.Context, req *request.FoodItemListRequest) (*response.PaginatedResponse[response.FoodItemResponse], error) {
	filter := entity.FoodItemFilter{
		Search:    req.Search,
		Category:  req.Category,
		Available: req.Available,
		Limit:     req.Limit(),
		Offset:    req.Offset(),
	}

	items, err := s.repo.FoodItem.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get food items: %w", err)
	}

	total, err := s.repo.FoodItem.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count food items: %w", err)
	}

	return response.NewPaginatedResponse(response.FoodItemsToResponse(items), filter.Limit, filter.Offset, total), nil
}

func (s *foodItemService) GetFoodItemByID(ctx context.Context, itemID int64) (*response.FoodItemResponse, error) {
	item, err := s.findFoodItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	resp := response.FoodItemToResponse(item)
	return &resp, nil
}

func (s *foodItemService) CreateFoodItem(ctx context.Context, req *request.FoodItemRequest) (*response.FoodItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create food item validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := &entity.FoodItem{
		Base:        entity.Base{CreatedAt: time.Now()},
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Available:   available,
	}

	if err := s.repo.FoodItem.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create food item: %w", err)
	}

	s.log.Info("Food item created", zap.Int64("food_item_id", item.ID))

	resp := response.FoodItemToResponse(item)
	return &resp, nil
}

func (s *foodItemService) UpdateFoodItem(ctx context.Context, itemID int64, req *request.FoodItemUpdateRequest) (*response.FoodItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update food item validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	item, err := s.findFoodItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.repo.FoodItem.Update(ctx, item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewNotFoundError(utils.CodeFoodItemNotFound, "Food item not found")
		}
		return nil, fmt.Errorf("update food item: %w", err)
	}

	resp := response.FoodItemToResponse(item)
	return &resp, nil
}

func (s *foodItemService) DeleteFoodItem(ctx context.Context, itemID int64) error {
	deleted, err := s.repo.FoodItem.Delete(ctx, itemID)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return utils.NewConflictError(utils.CodeFoodItemInUse, "Food item is part of existing bookings; mark it unavailable instead")
		}
		return fmt.Errorf("delete food item: %w", err)
	}
	if !deleted {
		return utils.NewNotFoundError(utils.CodeFoodItemNotFound, "Food item not found")
	}

	s.log.Info("Food item deleted", zap.Int64("food_item_id", itemID))
	return nil
}

func (s *foodItemService) findFoodItem(ctx context.Context, itemID int64) (*entity.FoodItem, error) {
	item, err := s.repo.FoodItem.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get food item: %w", err)
	}
	if item == nil {
		return nil, utils.NewNotFoundError(utils.CodeFoodItemNotFound, "Food item not found")
	}
	return item, nil
}
