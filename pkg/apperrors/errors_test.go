package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsMatchesWrappedCopies(t *testing.T) {
	err := fmt.Errorf("handler: %w", ErrReviewNotFound.WithDetails("id=42"))

	assert.True(t, Is(err, ErrReviewNotFound))
	assert.False(t, Is(err, ErrReviewIDRequired))

	// предопределенная ошибка не изменилась
	assert.Nil(t, ErrReviewNotFound.Details)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := StorageError(cause, "Failed to create review")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAppError_JSONEnvelope(t *testing.T) {
	data, err := json.Marshal(ErrorResponse{Error: ValidationError(map[string]string{"comment": "too short"})})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"code":"VALIDATION_FAILED","domain":"validation","message":"Validation failed","details":{"comment":"too short"}}}`, string(data))
}

func TestHandleGinError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		debug    bool
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "app error",
			err:      ErrReviewNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":{"code":"NOT_FOUND","domain":"review","message":"Review not found"}}`,
		},
		{
			name:     "plain error becomes internal",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":{"code":"INTERNAL_ERROR","domain":"system","message":"Internal server error"}}`,
		},
		{
			name:     "5xx details hidden without debug",
			err:      StorageError(errors.New("disk"), "Failed").WithDetails("secret path"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":{"code":"STORAGE_ERROR","domain":"storage","message":"Failed"}}`,
		},
		{
			name:     "5xx details shown in debug",
			debug:    true,
			err:      StorageError(errors.New("disk"), "Failed").WithDetails("secret path"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":{"code":"STORAGE_ERROR","domain":"storage","message":"Failed","details":"secret path"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			h := &GinErrorHandler{Debug: tt.debug}
			h.HandleGinError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
