package auth

import (
	"context"
	"crypto/subtle"

	"debatecamp/pkg/apperrors"
)

// Credentials - то, что админский запрос предъявил
type Credentials struct {
	AdminKey    string // заголовок admin-key или query adminKey
	BearerToken string // Authorization: Bearer <token>
}

// Authorizer проверяет право на админскую операцию до обращения к хранилищу отзывов
type Authorizer interface {
	Authorize(ctx context.Context, creds Credentials) (*Principal, error)
}

// SharedSecretAuthorizer сравнивает предъявленный ключ с настроенным
type SharedSecretAuthorizer struct {
	key []byte
}

func NewSharedSecretAuthorizer(key string) *SharedSecretAuthorizer {
	return &SharedSecretAuthorizer{key: []byte(key)}
}

func (a *SharedSecretAuthorizer) Authorize(ctx context.Context, creds Credentials) (*Principal, error) {
	if len(a.key) == 0 || creds.AdminKey == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare(a.key, []byte(creds.AdminKey)) != 1 {
		return nil, apperrors.ErrUnauthorized
	}
	return &Principal{Subject: RoleAdmin, Role: RoleAdmin, Method: MethodAdminKey}, nil
}

// TokenAuthorizer принимает токены, выпущенные TokenManager
type TokenAuthorizer struct {
	tokens *TokenManager
}

func NewTokenAuthorizer(tokens *TokenManager) *TokenAuthorizer {
	return &TokenAuthorizer{tokens: tokens}
}

func (a *TokenAuthorizer) Authorize(ctx context.Context, creds Credentials) (*Principal, error) {
	if creds.BearerToken == "" {
		return nil, apperrors.ErrUnauthorized
	}
	claims, err := a.tokens.Parse(creds.BearerToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithError(err)
	}
	if claims.Role != RoleAdmin {
		return nil, apperrors.ErrUnauthorized
	}
	return &Principal{Subject: claims.Subject, Role: claims.Role, Method: MethodToken}, nil
}

// ChainAuthorizer пробует авторизаторы по очереди, первый успех побеждает.
// Возвращается ошибка последнего авторизатора.
type ChainAuthorizer []Authorizer

func (c ChainAuthorizer) Authorize(ctx context.Context, creds Credentials) (*Principal, error) {
	var lastErr error = apperrors.ErrUnauthorized
	for _, a := range c {
		p, err := a.Authorize(ctx, creds)
		if err == nil {
			return p, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// BypassAuthorizer пропускает всех. Используется вне production, как и на исходном сайте.
type BypassAuthorizer struct{}

func (BypassAuthorizer) Authorize(ctx context.Context, creds Credentials) (*Principal, error) {
	return &Principal{Subject: "anonymous", Role: RoleAdmin, Method: MethodBypass}, nil
}
