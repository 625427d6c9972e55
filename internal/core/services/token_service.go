package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/SscSPs/neobank_backend/internal/platform/config"
	"github.com/SscSPs/neobank_backend/internal/utils"
)

// tokenService issues JWT access tokens after a password check.
type tokenService struct {
	BaseService
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade, clock Clock) portssvc.TokenSvcFacade {
	return &tokenService{
		BaseService: BaseService{Clock: clock},
		cfg:         cfg,
		userService: userService,
	}
}

func (s *tokenService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userService.VerifyPassword(ctx, req.Email, req.Password)
	if err != nil {
		s.LogDebug(ctx, "Login rejected", slog.String("email", req.Email))
		return nil, err
	}

	now := s.Now()
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(500, "failed to generate access token", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(s.cfg.JWTExpiryDuration),
		User:      dto.ToUserResponse(user),
	}, nil
}
