package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/data/entity"
	"cinebook/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindValidSession(ctx context.Context, token uuid.UUID) (*entity.SessionUser, error)
	Revoke(ctx context.Context, token uuid.UUID) (bool, error)
	CleanExpiredSessions(ctx context.Context, olderThan time.Duration) (int64, error)
}

type sessionRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewSessionRepository(db database.DBTX, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, token, user_agent, ip_address,
		                      expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Token,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()),
		)
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// FindValidSession resolves an unrevoked, unexpired token together with the
// owner's role.
func (r *sessionRepository) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.SessionUser, error) {
	query := `
		SELECT s.id, s.user_id, s.token, s.user_agent, s.ip_address,
		       s.expires_at, s.revoked_at, s.created_at, u.role
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1
		  AND s.revoked_at IS NULL
		  AND s.expires_at > NOW()
	`

	var su entity.SessionUser
	err := r.db.QueryRow(ctx, query, token).Scan(
		&su.ID,
		&su.UserID,
		&su.Token,
		&su.UserAgent,
		&su.IPAddress,
		&su.ExpiresAt,
		&su.RevokedAt,
		&su.CreatedAt,
		&su.Role,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &su, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token uuid.UUID) (bool, error) {
	query := `
		UPDATE sessions
		SET revoked_at = NOW()
		WHERE token = $1 AND revoked_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, token)
	if err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return false, fmt.Errorf("revoke session: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// CleanExpiredSessions deletes sessions that expired or were revoked more
// than olderThan ago.
func (r *sessionRepository) CleanExpiredSessions(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE expires_at < $1
		   OR (revoked_at IS NOT NULL AND revoked_at < $1)
	`

	result, err := r.db.Exec(ctx, query, time.Now().Add(-olderThan))
	if err != nil {
		r.log.Error("Failed to clean expired sessions", zap.Error(err))
		return 0, fmt.Errorf("clean sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
