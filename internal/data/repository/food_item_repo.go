package repository

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/data/entity"
	"cinebook/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FoodItemRepository interface {
	Create(ctx context.Context, item *entity.FoodItem) error
	FindByID(ctx context.Context, id int64) (*entity.FoodItem, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.FoodItem, error)
	FindAll(ctx context.Context, filter entity.FoodItemFilter) ([]*entity.FoodItem, error)
	Count(ctx context.Context, filter entity.FoodItemFilter) (int64, error)
	Update(ctx context.Context, item *entity.FoodItem) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type foodItemRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewFoodItemRepository(db database.DBTX, log *zap.Logger) FoodItemRepository {
	return &foodItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "food_item")),
	}
}

const foodItemColumns = `id, name, description, price, category, image_url, available, created_at`

func scanFoodItem(row rowScanner) (*entity.FoodItem, error) {
	var item entity.FoodItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.ImageURL,
		&item.Available,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *foodItemRepository) Create(ctx context.Context, item *entity.FoodItem) error {
	query := `
		INSERT INTO food_items (name, description, price, category, image_url, available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.ImageURL,
		item.Available,
		item.CreatedAt,
	).Scan(&item.ID)

	if err != nil {
		r.log.Error("Failed to create food item",
			zap.Error(err),
			zap.String("name", item.Name),
		)
		return fmt.Errorf("create food item %q: %w", item.Name, err)
	}

	return nil
}

func (r *foodItemRepository) FindByID(ctx context.Context, id int64) (*entity.FoodItem, error) {
	query := `SELECT ` + foodItemColumns + ` FROM food_items WHERE id = $1`

	item, err := scanFoodItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find food item by ID",
			zap.Error(err),
			zap.Int64("food_item_id", id),
		)
		return nil, fmt.Errorf("find food item by ID %d: %w", id, err)
	}

	return item, nil
}

func (r *foodItemRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.FoodItem, error) {
	if len(ids) == 0 {
		return []*entity.FoodItem{}, nil
	}

	query := `SELECT ` + foodItemColumns + ` FROM food_items WHERE id = ANY($1) ORDER BY id ASC`
	return r.list(ctx, "find food items by IDs", query, ids)
}

func foodItemWhere(filter entity.FoodItemFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Search != "" {
		w.add("name ILIKE $%d", likePattern(filter.Search))
	}
	if filter.Category != "" {
		w.add("category = $%d", filter.Category)
	}
	if filter.Available != nil {
		w.add("available = $%d", *filter.Available)
	}
	return w
}

func (r *foodItemRepository) FindAll(ctx context.Context, filter entity.FoodItemFilter) ([]*entity.FoodItem, error) {
	w := foodItemWhere(filter)
	suffix, args := w.page(filter.Limit, filter.Offset)
	query := `SELECT ` + foodItemColumns + ` FROM food_items` + w.clause() +
		` ORDER BY created_at DESC, id DESC` + suffix

	return r.list(ctx, "find food items", query, args...)
}

func (r *foodItemRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.FoodItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]*entity.FoodItem, 0)
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			r.log.Error("Failed to scan food item row", zap.Error(err))
			return nil, fmt.Errorf("scan food item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (r *foodItemRepository) Count(ctx context.Context, filter entity.FoodItemFilter) (int64, error) {
	w := foodItemWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM food_items`+w.clause(), w.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count food items", zap.Error(err))
		return 0, fmt.Errorf("count food items: %w", err)
	}

	return total, nil
}

func (r *foodItemRepository) Update(ctx context.Context, item *entity.FoodItem) error {
	query := `
		UPDATE food_items
		SET name = $2, description = $3, price = $4, category = $5, image_url = $6, available = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.ImageURL,
		item.Available,
	)
	if err != nil {
		r.log.Error("Failed to update food item",
			zap.Error(err),
			zap.Int64("food_item_id", item.ID),
		)
		return fmt.Errorf("update food item %d: %w", item.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update food item %d: %w", item.ID, pgx.ErrNoRows)
	}

	return nil
}

func (r *foodItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM food_items WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete food item",
			zap.Error(err),
			zap.Int64("food_item_id", id),
		)
		return false, fmt.Errorf("delete food item %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}
