package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinebook/internal/data/entity"
	"cinebook/internal/data/repository"
	"cinebook/internal/dto/request"
	"cinebook/internal/dto/response"
	"cinebook/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository // user + session repos
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Email must be unused
	existingUser, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, utils.NewConflictError(utils.CodeEmailTaken, "Email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Save user
	now := time.Now()
	user := &entity.User{
		BaseUUID: entity.BaseUUID{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleCustomer,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.NewConflictError(utils.CodeEmailTaken, "Email already registered")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	// 5. Auto login after register
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, utils.NewUnauthorizedError(utils.CodeInvalidCredentials, "Invalid email or password")
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return utils.NewUnauthorizedError(utils.CodeUnauthorized, "Invalid token format")
	}

	revoked, err := s.repo.Session.Revoke(ctx, tokenUUID)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if !revoked {
		return utils.NewUnauthorizedError(utils.CodeUnauthorized, "Session not found or already revoked")
	}

	s.log.Info("User logged out")
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	expiry := s.config.Session.ExpiryHours
	if expiry <= 0 {
		expiry = 24
	}

	now := time.Now()
	session := &entity.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(time.Duration(expiry) * time.Hour),
		CreatedAt: now,
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
