package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func loggingFixture(status int) (*bytes.Buffer, http.Handler) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/thing/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte("ok"))
	})
	return buf, Logging(mux, logger)
}

func TestLoggingRecordsRoutePattern(t *testing.T) {
	buf, handler := loggingFixture(http.StatusOK)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/thing/42", nil))

	out := buf.String()
	assert.Contains(t, out, "GET /api/thing/{id}")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "bytes=2")
	assert.Contains(t, out, "level=info")
}

func TestLoggingWarnsOnServerError(t *testing.T) {
	buf, handler := loggingFixture(http.StatusInternalServerError)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/thing/42", nil))

	out := buf.String()
	assert.Contains(t, out, "status=500")
	assert.Contains(t, out, "level=warn")
}

func TestLoggingFallsBackToRawPath(t *testing.T) {
	buf, handler := loggingFixture(http.StatusOK)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Contains(t, buf.String(), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
