package middleware

import (
	"strings"

	"debatecamp/internal/auth"
	"debatecamp/internal/logger"
	"debatecamp/pkg/apperrors"
	"debatecamp/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

const (
	AdminKeyHeader = "admin-key"
	AdminKeyQuery  = "adminKey"
)

// AdminAuth - middleware проверки прав администратора.
// Без успешной авторизации запрос не доходит до хранилища.
func AdminAuth(authorizer auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := authorizer.Authorize(c.Request.Context(), extractCredentials(c))
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Admin access denied",
				"path", c.Request.URL.Path,
				"error", err.Error(),
			)
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		// Сохраняем субъекта в контекст
		c.Set(contextkeys.AdminPrincipalKey.String(), principal)
		c.Request = c.Request.WithContext(logger.WithAdmin(c.Request.Context(), principal.Subject))
		c.Next()
	}
}

func extractCredentials(c *gin.Context) auth.Credentials {
	creds := auth.Credentials{
		AdminKey: c.GetHeader(AdminKeyHeader),
	}
	if creds.AdminKey == "" {
		creds.AdminKey = c.Query(AdminKeyQuery)
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		creds.BearerToken = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return creds
}

// GetAdminPrincipal извлекает субъекта администратора из контекста
func GetAdminPrincipal(c *gin.Context) *auth.Principal {
	val, exists := c.Get(contextkeys.AdminPrincipalKey.String())
	if !exists {
		return nil
	}

	principal, ok := val.(*auth.Principal)
	if !ok {
		return nil
	}

	return principal
}
