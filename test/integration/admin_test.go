package integration_test

import (
	"net/http"
	"testing"

	"debatecamp/internal/auth"
	"debatecamp/internal/config"
	"debatecamp/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_RequiresKeyWhenEnforced(t *testing.T) {
	ts := helpers.NewTestServer(t, enforceAdmin)
	created := submit(t, ts, janeReview())

	// без ключа
	res, body := ts.SendRequest(t, "GET", "/api/v1/admin/reviews", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, body).Error.Code)

	// с неверным ключом
	res, _ = ts.SendRequest(t, "GET", "/api/v1/admin/reviews", map[string]string{"admin-key": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// отказ в модерации не меняет коллекцию
	res, _ = ts.SendRequest(t, "PUT", "/api/v1/admin/reviews", nil, map[string]interface{}{"id": created.ID, "approved": true})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// ключ в query-параметре
	res, body = ts.SendRequest(t, "GET", "/api/v1/admin/reviews?adminKey="+testAdminKey, nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	all := decodeReviews(t, body)
	require.Len(t, all, 1)
	assert.False(t, all[0].Approved)
}

func TestAdmin_BypassedOutsideProduction(t *testing.T) {
	ts := helpers.NewTestServer(t, func(cfg *config.Config) {
		cfg.Admin.Key = testAdminKey
	})

	res, _ := ts.SendRequest(t, "GET", "/api/v1/admin/reviews", nil, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestAdmin_UpdateApprovalErrors(t *testing.T) {
	ts := helpers.NewTestServer(t, enforceAdmin)
	created := submit(t, ts, janeReview())

	// без id
	res, body := ts.SendRequest(t, "PUT", "/api/v1/admin/reviews", adminHeaders(), map[string]interface{}{"approved": true})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Review ID is required", decodeError(t, body).Error.Message)

	// неизвестный id
	res, body = ts.SendRequest(t, "PUT", "/api/v1/admin/reviews", adminHeaders(), map[string]interface{}{"id": "nope", "approved": true})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Error.Code)

	res, _ = ts.SendRequest(t, "PUT", "/api/v1/admin/reviews/nope", adminHeaders(), map[string]interface{}{"approved": true})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// коллекция не изменилась
	_, body = ts.SendRequest(t, "GET", "/api/v1/admin/reviews", adminHeaders(), nil)
	all := decodeReviews(t, body)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
	assert.False(t, all[0].Approved)
}

func TestAdmin_ApprovalIsIdempotentAndRevocable(t *testing.T) {
	ts := helpers.NewTestServer(t, enforceAdmin)
	created := submit(t, ts, janeReview())
	path := "/api/v1/admin/reviews/" + created.ID

	for i := 0; i < 2; i++ {
		res, body := ts.SendRequest(t, "PUT", path, adminHeaders(), map[string]interface{}{"approved": true})
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.True(t, decodeReview(t, body).Approved)
	}

	// отсутствующий approved читается как false
	res, body := ts.SendRequest(t, "PUT", path, adminHeaders(), map[string]interface{}{})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.False(t, decodeReview(t, body).Approved)

	_, body = ts.SendRequest(t, "GET", "/api/v1/reviews", nil, nil)
	assert.Empty(t, decodeReviews(t, body))
}

func TestAdmin_TokenLogin(t *testing.T) {
	hash, err := auth.HashPassword("camp-admin-2024")
	require.NoError(t, err)

	ts := helpers.NewTestServer(t, func(cfg *config.Config) {
		cfg.Admin.Enforce = true
		cfg.Admin.PasswordHash = hash
		cfg.Admin.JWTSecret = "integration-secret"
	})

	// неверный пароль
	res, _ := ts.SendRequest(t, "POST", "/api/v1/admin/login", nil, map[string]string{"password": "guess"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// пустое тело
	res, body := ts.SendRequest(t, "POST", "/api/v1/admin/login", nil, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, decodeError(t, body).Error.Details, "password")

	res, body = ts.SendRequest(t, "POST", "/api/v1/admin/login", nil, map[string]string{"password": "camp-admin-2024"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, jsonUnmarshal(body, &token))
	require.NotEmpty(t, token.AccessToken)

	res, _ = ts.SendRequest(t, "GET", "/api/v1/admin/reviews", helpers.Bearer(token.AccessToken), nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body = ts.SendRequest(t, "GET", "/api/v1/admin/reviews", helpers.Bearer("garbage"), nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, body).Error.Code)
}

func TestAdmin_LoginDisabledWithoutPassword(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/admin/login", nil, map[string]string{"password": "anything"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
