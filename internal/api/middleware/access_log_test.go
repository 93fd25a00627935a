package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(orig) })
	return &buf
}

func TestAccessLog_AuthenticatedRequestLogsUserID(t *testing.T) {
	buf := captureLog(t)

	validator := new(MockAuthValidator)
	validator.On("ValidateAPIKey", mock.Anything, "lmn_token").Return("user-42", nil)

	// Access log wraps auth, the same order the router uses.
	handler := AccessLog(APIKeyAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/search/stats", nil)
	req.Header.Set("Authorization", "Bearer lmn_token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), `"user_id":"user-42"`)
}

func TestAccessLog_UnauthenticatedRequestOmitsUserID(t *testing.T) {
	buf := captureLog(t)

	handler := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	logged := buf.String()
	assert.Contains(t, logged, `"path":"/health"`)
	assert.NotContains(t, logged, "user_id")
}

func TestAccessLog_RecordsStatusAndMethod(t *testing.T) {
	buf := captureLog(t)

	handler := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/search/history/h-1", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	logged := buf.String()
	assert.Contains(t, logged, `"status":404`)
	assert.Contains(t, logged, `"method":"DELETE"`)
}
