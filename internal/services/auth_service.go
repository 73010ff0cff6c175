package services

import (
	"context"

	"debatecamp/internal/auth"
	"debatecamp/internal/logger"
	"debatecamp/internal/services/dto"
	"debatecamp/pkg/apperrors"
)

type AuthService interface {
	// Login обменивает пароль администратора на токен
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
}

type authService struct {
	passwordHash string
	tokens       *auth.TokenManager
}

// NewAuthService - tokens может быть nil, тогда вход по паролю выключен
func NewAuthService(passwordHash string, tokens *auth.TokenManager) AuthService {
	return &authService{
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	if s.passwordHash == "" || s.tokens == nil {
		return nil, apperrors.ErrLoginDisabled
	}

	if !auth.CheckPasswordHash(req.Password, s.passwordHash) {
		logger.CtxWarn(ctx, "Admin login failed")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(auth.RoleAdmin)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Admin token issued", "expires_at", expiresAt)
	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
