package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/messages"
	middleware "github.com/nimeshabuddhika/resilient-antifraud/pkg/middlewares"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/stores/memory"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const card = "4000008449433403"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store := memory.NewStore()
	store.PutUser(models.User{Username: "merchant", Role: models.RoleMerchant})
	store.PutUser(models.User{Username: "locked", Role: models.RoleMerchant, Locked: true})
	logger := zap.NewNop()
	engine := screening.NewEngine(screening.EngineConfig{
		Logger: logger, Limits: store, Ledger: store, Feedback: store, IPs: store, Cards: store, Users: store,
	})

	r := gin.New()
	api := r.Group("/api/antifraud")
	api.Use(middleware.TraceID())
	NewTransactionHandler(logger, engine).RegisterRoutes(api)
	NewBlacklistHandler(logger, screening.NewBlacklistService(logger, store)).RegisterRoutes(api)
	NewBaseHandler(logger).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(pkg.HeaderUsername, user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func transaction(amount int64, ip, region, date string) map[string]any {
	return map[string]any{"amount": amount, "ip": ip, "number": card, "region": region, "date": date}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestEvaluateTransaction(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		user       string
		body       any
		wantStatus int
		wantResult string
		wantInfo   string
		wantCode   string
	}{
		{name: "allowed", user: "merchant", body: transaction(150, "10.0.0.1", "EAP", "2022-01-22T16:04:00"), wantStatus: http.StatusOK, wantResult: "ALLOWED", wantInfo: "none"},
		{name: "manual", user: "merchant", body: transaction(250, "10.0.0.1", "EAP", "2022-01-22T16:05:00"), wantStatus: http.StatusOK, wantResult: "MANUAL_PROCESSING", wantInfo: "amount"},
		{name: "prohibited", user: "merchant", body: transaction(1800, "10.0.0.1", "EAP", "2022-01-22T16:06:00"), wantStatus: http.StatusOK, wantResult: "PROHIBITED", wantInfo: "amount"},
		{name: "bad region", user: "merchant", body: transaction(10, "10.0.0.1", "XX", "2022-01-22T16:06:00"), wantStatus: http.StatusBadRequest, wantCode: "APP_INVALID_INPUT"},
		{name: "bad ip", user: "merchant", body: transaction(10, "10.0.0", "EAP", "2022-01-22T16:06:00"), wantStatus: http.StatusBadRequest, wantCode: "APP_INVALID_INPUT"},
		{name: "negative amount", user: "merchant", body: transaction(-1, "10.0.0.1", "EAP", "2022-01-22T16:06:00"), wantStatus: http.StatusBadRequest, wantCode: "APP_INVALID_INPUT"},
		{name: "missing fields", user: "merchant", body: map[string]any{"amount": 10}, wantStatus: http.StatusBadRequest, wantCode: "APP_INVALID_INPUT"},
		{name: "unknown user", user: "ghost", body: transaction(10, "10.0.0.1", "EAP", "2022-01-22T16:06:00"), wantStatus: http.StatusNotFound, wantCode: "APP_NOT_FOUND"},
		{name: "locked user", user: "locked", body: transaction(10, "10.0.0.1", "EAP", "2022-01-22T16:06:00"), wantStatus: http.StatusUnauthorized, wantCode: "APP_UNAUTHORIZED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/antifraud/transaction", tt.user, tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decode[pkg.ErrorResponse](t, w).Code)
				return
			}
			got := decode[views.VerdictResponse](t, w)
			assert.Equal(t, tt.wantResult, got.Result)
			assert.Equal(t, tt.wantInfo, got.Info)
		})
	}
}

func TestFeedbackAndHistory(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/antifraud/transaction", "merchant", transaction(1800, "10.0.0.1", "EAP", "2022-01-22T16:04:00"))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/antifraud/history", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]views.TransactionResponse](t, w)
	require.Len(t, history, 1)
	assert.Equal(t, "", history[0].Feedback)
	assert.Equal(t, "PROHIBITED", history[0].Result)

	w = do(t, r, http.MethodPut, "/api/antifraud/transaction", "", map[string]any{"transactionId": history[0].TransactionID, "feedback": "MANUAL_PROCESSING"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[views.TransactionResponse](t, w)
	assert.Equal(t, "MANUAL_PROCESSING", got.Feedback)
	assert.Equal(t, "2022-01-22T16:04:00", got.Date.Format(views.LocalDateTimeLayout))

	w = do(t, r, http.MethodGet, "/api/antifraud/limits", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, views.LimitsResponse{MaxAllowed: 200, MaxManualProcessing: 1560}, decode[views.LimitsResponse](t, w))

	w = do(t, r, http.MethodPut, "/api/antifraud/transaction", "", map[string]any{"transactionId": history[0].TransactionID, "feedback": "ALLOWED"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPut, "/api/antifraud/transaction", "", map[string]any{"transactionId": 99, "feedback": "ALLOWED"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/antifraud/history/"+card, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]views.TransactionResponse](t, w), 1)

	w = do(t, r, http.MethodGet, "/api/antifraud/history/4111111111111111", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/antifraud/history/4000008449433402", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedback_Unprocessable(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/antifraud/transaction", "merchant", transaction(150, "10.0.0.1", "EAP", "2022-01-22T16:04:00"))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPut, "/api/antifraud/transaction", "", map[string]any{"transactionId": 1, "feedback": "ALLOWED"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "BUSINESS_RULE_VIOLATION", decode[pkg.ErrorResponse](t, w).Code)

	w = do(t, r, http.MethodPut, "/api/antifraud/transaction", "", map[string]any{"transactionId": 1, "feedback": "SOMETIMES"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBlacklistEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/antifraud/suspicious-ip", "", map[string]any{"ip": "192.168.1.66"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, views.SuspiciousIPResponse{ID: 1, IP: "192.168.1.66"}, decode[views.SuspiciousIPResponse](t, w))

	w = do(t, r, http.MethodPost, "/api/antifraud/suspicious-ip", "", map[string]any{"ip": "192.168.1.66"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/api/antifraud/suspicious-ip", "", map[string]any{"ip": "1.2.3"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/antifraud/transaction", "merchant", transaction(10, "192.168.1.66", "EAP", "2022-01-22T16:04:00"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, views.VerdictResponse{Result: "PROHIBITED", Info: "ip"}, decode[views.VerdictResponse](t, w))

	w = do(t, r, http.MethodGet, "/api/antifraud/suspicious-ip", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]views.SuspiciousIPResponse](t, w), 1)

	w = do(t, r, http.MethodDelete, "/api/antifraud/suspicious-ip/192.168.1.66", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IP 192.168.1.66 successfully removed!", decode[views.StatusResponse](t, w).Status)

	w = do(t, r, http.MethodDelete, "/api/antifraud/suspicious-ip/192.168.1.66", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/antifraud/stolencard", "", map[string]any{"number": card})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, "/api/antifraud/stolencard", "", map[string]any{"number": card})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = do(t, r, http.MethodGet, "/api/antifraud/stolencard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []views.StolenCardResponse{{ID: 1, Number: card}}, decode[[]views.StolenCardResponse](t, w))

	w = do(t, r, http.MethodDelete, "/api/antifraud/stolencard/4000008449433402", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodDelete, "/api/antifraud/stolencard/"+card, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Card "+card+" successfully removed!", decode[views.StatusResponse](t, w).Status)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

type stubPublisher struct {
	published []messages.Candidate
}

func (s *stubPublisher) Publish(_ context.Context, c messages.Candidate) error {
	s.published = append(s.published, c)
	return nil
}

func TestQueueTransaction(t *testing.T) {
	pub := &stubPublisher{}
	r := gin.New()
	api := r.Group("/api/antifraud")
	api.Use(middleware.TraceID())
	NewQueueHandler(zap.NewNop(), pub).RegisterRoutes(api)

	w := do(t, r, http.MethodPost, "/api/antifraud/transaction/queue", "merchant", transaction(150, "10.0.0.1", "EAP", "2022-01-22T16:04:00"))
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	got := decode[views.QueuedResponse](t, w)
	assert.NotEmpty(t, got.RequestID)
	require.Len(t, pub.published, 1)
	assert.Equal(t, got.RequestID, pub.published[0].RequestID)
	assert.Equal(t, "merchant", pub.published[0].Username)
	assert.Equal(t, time.Date(2022, 1, 22, 16, 4, 0, 0, time.UTC), pub.published[0].Date)

	w = do(t, r, http.MethodPost, "/api/antifraud/transaction/queue", "merchant", transaction(150, "10.0.0.1", "XX", "2022-01-22T16:04:00"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/antifraud/transaction/queue", "", transaction(150, "10.0.0.1", "EAP", "2022-01-22T16:04:00"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, pub.published, 1)
}
