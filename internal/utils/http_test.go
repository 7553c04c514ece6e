package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccessResponse(t *testing.T) {
	c, rec := newContext()

	err := SuccessResponse(c, http.StatusCreated, "Payment initiated", map[string]string{"transaction_id": "t-1"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var response Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "Payment initiated", response.Message)
	assert.Equal(t, map[string]interface{}{"transaction_id": "t-1"}, response.Data)
}

func TestFailureResponse(t *testing.T) {
	c, rec := newContext()

	err := FailureResponse(c, http.StatusConflict, "already_initiated", "Payment has already been initiated for this rental", nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "already_initiated", response.Reason)
	assert.Equal(t, http.StatusConflict, response.Code)
}

func TestErrorHelpers_DefaultMessages(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(echo.Context, string) error
		status  int
		message string
	}{
		{"unauthorized", UnauthorizedResponse, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", ForbiddenResponse, http.StatusForbidden, "Forbidden"},
		{"not found", NotFoundResponse, http.StatusNotFound, "Resource not found"},
		{"too many", TooManyRequestsResponse, http.StatusTooManyRequests, "Too many requests"},
		{"internal", InternalServerErrorResponse, http.StatusInternalServerError, "Internal server error"},
		{"unavailable", ServiceUnavailableResponse, http.StatusServiceUnavailable, "Service unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()

			require.NoError(t, tt.fn(c, ""))

			assert.Equal(t, tt.status, rec.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.message, response.Error)
		})
	}
}
