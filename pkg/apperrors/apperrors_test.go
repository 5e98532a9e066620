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

type upstreamErr struct {
	status  int
	message string
}

func (e *upstreamErr) Error() string         { return fmt.Sprintf("api: %d", e.status) }
func (e *upstreamErr) StatusCode() int       { return e.status }
func (e *upstreamErr) ServerMessage() string { return e.message }

func TestHandleError_JSONBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/user/reports", nil)
	c.Request.Header.Set("Accept", "application/json")

	HandleError(c, NewBadRequestError("Status is required").WithDetails(map[string]string{"status": "required"}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Domain  string            `json:"domain"`
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(CodeValidationFailed), body.Error.Code)
	assert.Equal(t, "request", body.Error.Domain)
	assert.Equal(t, "Status is required", body.Error.Message)
	assert.Equal(t, "required", body.Error.Details["status"])
	assert.NotContains(t, w.Body.String(), "HTTPCode")
}

func TestHandleError_UnknownErrorIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept", "application/json")

	HandleError(c, errors.New("dial tcp: refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.NotContains(t, w.Body.String(), "dial tcp")
}

func TestActionFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		status  int
	}{
		{"server message wins", &upstreamErr{status: 422, message: "Plan already exists"}, "Plan already exists", http.StatusBadGateway},
		{"empty server message", &upstreamErr{status: 500}, "Failed to save", http.StatusBadGateway},
		{"not found keeps 404", &upstreamErr{status: 404, message: "User not found"}, "User not found", http.StatusNotFound},
		{"plain error", errors.New("timeout"), "Failed to save", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ActionFailure(tt.err, "cms", "Failed to save")
			assert.Equal(t, CodeActionFailed, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Equal(t, tt.status, HTTPStatus(appErr))
			assert.Equal(t, tt.message, UserMessage(fmt.Errorf("wrapped: %w", appErr)))
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&upstreamErr{status: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(fmt.Errorf("load: %w", &upstreamErr{status: http.StatusUnauthorized})))
	assert.True(t, IsUnauthorized(ErrSessionExpired))
	assert.False(t, IsUnauthorized(&upstreamErr{status: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(ErrInvalidCredentials))
	assert.False(t, IsUnauthorized(errors.New("boom")))
}

func TestUserMessage_Fallbacks(t *testing.T) {
	assert.Equal(t, "Something went wrong. Please try again.", UserMessage(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(ErrVideoTooLarge))
}
