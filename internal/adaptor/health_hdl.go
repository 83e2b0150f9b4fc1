package adaptor

import (
	"context"
	"net/http"
	"time"

	"cinebook/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	redis *redis.Client
	log   *zap.Logger
}

// NewHealthHandler checks db and, when configured, redis. rdb may be nil.
func NewHealthHandler(db pinger, rdb *redis.Client, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: rdb,
		log:   log.With(zap.String("handler", "health")),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	checks := map[string]string{"database": "ok", "redis": "disabled"}
	healthy := true

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("Database health check failed", zap.Error(err))
		checks["database"] = "down"
		healthy = false
	}

	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.log.Warn("Redis health check failed", zap.Error(err))
			checks["redis"] = "down"
		}
	}

	if !healthy {
		utils.ResponseJSON(w, http.StatusServiceUnavailable, utils.Response{Status: false, Message: "unhealthy", Data: checks})
		return
	}
	utils.ResponseSuccess(w, "ok", checks)
}
