package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewApp_MemoryDriver(t *testing.T) {
	gin.SetMode(gin.TestMode)
	viper.Reset()
	t.Setenv("APP_STORE_DRIVER", "memory")
	t.Setenv("APP_PORT", "18080")
	t.Setenv("APP_REDIS_ADDR", "")
	t.Setenv("APP_KAFKA_BROKERS", "")

	srv, cleanup, err := NewApp(context.Background(), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, ":18080", srv.Addr)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/antifraud/limits", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"maxAllowed":200,"maxManualProcessing":1500}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Trace-Id"))

	// the memory directory starts empty, so every actor is unknown
	body := `{"amount":10,"ip":"10.0.0.1","number":"4000008449433403","region":"EAP","date":"2022-01-22T16:04:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/antifraud/transaction", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Username", "merchant")
	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// queue endpoint is not mounted without brokers
	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/antifraud/transaction/queue", strings.NewReader(body)))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "antifraud_http_requests_total")
}
