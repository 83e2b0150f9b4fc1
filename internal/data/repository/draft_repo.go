package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const draftKeyPrefix = "draft:"

// DraftRepository keeps one booking draft per user in Redis.
type DraftRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.BookingDraft, error)
	Save(ctx context.Context, userID uuid.UUID, draft *entity.BookingDraft) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type draftRepository struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewDraftRepository(rdb *redis.Client, ttl time.Duration, log *zap.Logger) DraftRepository {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &draftRepository{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("repository", "draft")),
	}
}

func draftKey(userID uuid.UUID) string {
	return draftKeyPrefix + userID.String()
}

// Get returns the stored draft, or nil when the user has none or it expired.
func (r *draftRepository) Get(ctx context.Context, userID uuid.UUID) (*entity.BookingDraft, error) {
	raw, err := r.rdb.Get(ctx, draftKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to load draft",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("load draft for user %s: %w", userID, err)
	}

	var draft entity.BookingDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		// A corrupt entry is treated as absent and overwritten on next save.
		r.log.Warn("Discarding unreadable draft",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, nil
	}

	return &draft, nil
}

// Save stores the draft and restarts its TTL.
func (r *draftRepository) Save(ctx context.Context, userID uuid.UUID, draft *entity.BookingDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	if err := r.rdb.Set(ctx, draftKey(userID), raw, r.ttl).Err(); err != nil {
		r.log.Error("Failed to save draft",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("save draft for user %s: %w", userID, err)
	}

	return nil
}

func (r *draftRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.rdb.Del(ctx, draftKey(userID)).Err(); err != nil {
		r.log.Error("Failed to delete draft",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("delete draft for user %s: %w", userID, err)
	}
	return nil
}
