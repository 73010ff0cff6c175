package services

import (
	"context"
	"testing"
	"time"

	"debatecamp/internal/auth"
	"debatecamp/internal/services/dto"
	"debatecamp/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (AuthService, *auth.TokenManager) {
	t.Helper()
	hash, err := auth.HashPassword("camp-admin-2024")
	require.NoError(t, err)
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthService(hash, tokens), tokens
}

func TestAuthService_Login(t *testing.T) {
	svc, tokens := newAuthFixture(t)

	before := time.Now()
	resp, err := svc.Login(context.Background(), &dto.AdminLoginRequest{Password: "camp-admin-2024"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, resp.ExpiresAt.After(before.Add(59*time.Minute)))

	claims, err := tokens.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestAuthService_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.AdminLoginRequest{Password: "guess"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestAuthService_LoginDisabled(t *testing.T) {
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = NewAuthService("", tokens).Login(context.Background(), &dto.AdminLoginRequest{Password: "anything"})
	assert.Equal(t, apperrors.ErrLoginDisabled, err)

	_, err = NewAuthService("$2a$10$hash", nil).Login(context.Background(), &dto.AdminLoginRequest{Password: "anything"})
	assert.Equal(t, apperrors.ErrLoginDisabled, err)
}
