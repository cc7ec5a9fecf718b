package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_StatusCodes(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		status    int
	}{
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeRateLimit, http.StatusTooManyRequests},
		{ErrorTypeTimeout, http.StatusRequestTimeout},
		{ErrorTypeExternal, http.StatusBadGateway},
		{ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			err := NewAppError(tt.errorType, "CODE", "message", nil)
			assert.Equal(t, tt.status, err.StatusCode)
		})
	}
}

func TestAppError_WrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError("write failed", cause)

	assert.Contains(t, err.Error(), "write failed")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestAppError_Is(t *testing.T) {
	a := NewValidationError("bad", nil)
	b := NewValidationError("also bad", nil)
	c := NewNotFoundError("thing")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestSendError_ResponseShape(t *testing.T) {
	rec := httptest.NewRecorder()
	SendError(rec, NewValidationError("bad input", map[string]interface{}{"field": "id"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	require.NotNil(t, response.Error)
	assert.Equal(t, "bad input", response.Error.Message)
	assert.Equal(t, "VALIDATION_FAILED", response.Error.Code)
	assert.Equal(t, "id", response.Error.Details["field"])
}

func TestSendSuccess_ResponseShape(t *testing.T) {
	rec := httptest.NewRecorder()
	SendSuccess(rec, map[string]int{"count": 3})

	assert.Equal(t, http.StatusOK, rec.Code)

	var response APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Nil(t, response.Error)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.IsAllowed("client-a"), "request %d should be allowed", i)
	}
	assert.False(t, rl.IsAllowed("client-a"), "fourth request exceeds the limit")
	assert.True(t, rl.IsAllowed("client-b"), "limits are tracked per client")
}

func TestValidationMiddleware_RequiresJSONContentType(t *testing.T) {
	handler := ValidationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/v1/graph/enhance", nil)
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest("POST", "/api/v1/graph/enhance", nil)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// GET requests are not checked.
	req = httptest.NewRequest("GET", "/health", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSMiddleware_HandlesPreflight(t *testing.T) {
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("OPTIONS", "/api/v1/catalogs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "preflight short-circuits before the handler")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
