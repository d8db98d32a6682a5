package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func get(t *testing.T, s *Server, path string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestIndexReturnsStatus(t *testing.T) {
	t.Parallel()

	s := NewServer("0", zap.NewNop())

	code, body := get(t, s, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "running")
}

func TestHealthReturnsOK(t *testing.T) {
	t.Parallel()

	s := NewServer("0", zap.NewNop())

	code, body := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)
}
