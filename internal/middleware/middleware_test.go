package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"debatecamp/internal/auth"
	"debatecamp/internal/logger"
	"debatecamp/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// captureAuthorizer запоминает предъявленные учетные данные
type captureAuthorizer struct {
	got   auth.Credentials
	allow bool
}

func (a *captureAuthorizer) Authorize(ctx context.Context, creds auth.Credentials) (*auth.Principal, error) {
	a.got = creds
	if !a.allow {
		return nil, apperrors.ErrUnauthorized
	}
	return &auth.Principal{Subject: "admin", Role: auth.RoleAdmin, Method: auth.MethodAdminKey}, nil
}

func newAdminRouter(a auth.Authorizer, reached *bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/admin", AdminAuth(a), func(c *gin.Context) {
		*reached = true
		p := GetAdminPrincipal(c)
		c.JSON(http.StatusOK, gin.H{
			"subject": p.Subject,
			"logged":  logger.GetAdmin(c.Request.Context()),
		})
	})
	return r
}

func TestAdminAuth_Allows(t *testing.T) {
	a := &captureAuthorizer{allow: true}
	var reached bool
	r := newAdminRouter(a, &reached)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(AdminKeyHeader, "header-key")
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.Equal(t, "header-key", a.got.AdminKey)
	assert.Equal(t, "abc.def.ghi", a.got.BearerToken)
	assert.JSONEq(t, `{"subject":"admin","logged":"admin"}`, w.Body.String())
}

func TestAdminAuth_QueryKey(t *testing.T) {
	a := &captureAuthorizer{allow: true}
	var reached bool
	r := newAdminRouter(a, &reached)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin?adminKey=query-key", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "query-key", a.got.AdminKey)
}

func TestAdminAuth_HeaderWinsOverQuery(t *testing.T) {
	a := &captureAuthorizer{allow: true}
	var reached bool
	r := newAdminRouter(a, &reached)

	req := httptest.NewRequest(http.MethodGet, "/admin?adminKey=query-key", nil)
	req.Header.Set(AdminKeyHeader, "header-key")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "header-key", a.got.AdminKey)
}

func TestAdminAuth_Denies(t *testing.T) {
	a := &captureAuthorizer{allow: false}
	var reached bool
	r := newAdminRouter(a, &reached)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(apperrors.CodeUnauthorized), body["error"]["code"])
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, logger.GetRequestID(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "incoming-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "incoming-id", w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://camp.example/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://camp.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://camp.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://camp.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
