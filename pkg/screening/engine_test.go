package screening_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	mock_screening "github.com/nimeshabuddhika/resilient-antifraud/pkg/screening/mocks"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/stores/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	merchant = "merchant"
	card     = "4000008449433403"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newMemoryEngine(t *testing.T) (*screening.Engine, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.PutUser(models.User{Username: merchant, Role: models.RoleMerchant})
	store.PutUser(models.User{Username: "locked", Role: models.RoleMerchant, Locked: true})
	engine := screening.NewEngine(screening.EngineConfig{
		Limits:   store,
		Ledger:   store,
		Feedback: store,
		IPs:      store,
		Cards:    store,
		Users:    store,
	})
	return engine, store
}

func candidate(amount int64, ip string, region models.Region, date time.Time) screening.Candidate {
	return screening.Candidate{Amount: amount, IP: ip, Number: card, Region: region, Date: date}
}

func TestEngine_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, store *memory.Store)
		amount   int64
		want     models.Verdict
		wantInfo string
	}{
		{name: "clean transaction", amount: 150, want: models.VerdictAllowed, wantInfo: "none"},
		{name: "amount between limits", amount: 250, want: models.VerdictManualProcessing, wantInfo: "amount"},
		{name: "amount above manual limit", amount: 1800, want: models.VerdictProhibited, wantInfo: "amount"},
		{
			name: "suspicious ip",
			setup: func(t *testing.T, store *memory.Store) {
				_, err := store.AddIP(context.Background(), "192.168.1.1")
				require.NoError(t, err)
			},
			amount:   250,
			want:     models.VerdictProhibited,
			wantInfo: "ip",
		},
		{
			name: "stolen card and suspicious ip",
			setup: func(t *testing.T, store *memory.Store) {
				_, err := store.AddIP(context.Background(), "192.168.1.1")
				require.NoError(t, err)
				_, err = store.AddCard(context.Background(), card)
				require.NoError(t, err)
			},
			amount:   2000,
			want:     models.VerdictProhibited,
			wantInfo: "amount, card-number, ip",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, store := newMemoryEngine(t)
			if tt.setup != nil {
				tt.setup(t, store)
			}

			got, err := engine.Evaluate(context.Background(), candidate(tt.amount, "192.168.1.1", models.RegionEAP, baseTime), merchant)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Result)
			assert.Equal(t, tt.wantInfo, got.Info())
			assert.Equal(t, int64(1), got.TransactionID)

			stored, err := store.FindByID(context.Background(), got.TransactionID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Result)
			assert.Nil(t, stored.Feedback)
		})
	}
}

func TestEngine_Evaluate_RegionCorrelation(t *testing.T) {
	engine, _ := newMemoryEngine(t)
	ctx := context.Background()

	for i, region := range []models.Region{models.RegionECA, models.RegionHIC, models.RegionECA} {
		_, err := engine.Evaluate(ctx, candidate(10, "10.0.0.1", region, baseTime.Add(time.Duration(i)*time.Minute)), merchant)
		require.NoError(t, err)
	}

	got, err := engine.Evaluate(ctx, candidate(10, "10.0.0.1", models.RegionEAP, baseTime.Add(5*time.Minute)), merchant)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictManualProcessing, got.Result)
	assert.Equal(t, "region-correlation", got.Info())

	_, err = engine.Evaluate(ctx, candidate(10, "10.0.0.1", models.RegionLAC, baseTime.Add(6*time.Minute)), merchant)
	require.NoError(t, err)
	got, err = engine.Evaluate(ctx, candidate(10, "10.0.0.1", models.RegionEAP, baseTime.Add(7*time.Minute)), merchant)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictProhibited, got.Result)
	assert.Equal(t, "region-correlation", got.Info())
}

func TestEngine_Evaluate_IPCorrelation(t *testing.T) {
	engine, _ := newMemoryEngine(t)
	ctx := context.Background()

	for i, ip := range []string{"10.0.0.2", "10.0.0.3"} {
		_, err := engine.Evaluate(ctx, candidate(10, ip, models.RegionEAP, baseTime.Add(time.Duration(i)*time.Minute)), merchant)
		require.NoError(t, err)
	}

	got, err := engine.Evaluate(ctx, candidate(250, "10.0.0.1", models.RegionEAP, baseTime.Add(5*time.Minute)), merchant)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictManualProcessing, got.Result)
	assert.Equal(t, "amount, ip-correlation", got.Info())
}

func TestEngine_Evaluate_WindowIsHalfOpen(t *testing.T) {
	engine, _ := newMemoryEngine(t)
	ctx := context.Background()

	// exactly one hour before: excluded
	_, err := engine.Evaluate(ctx, candidate(10, "10.0.0.2", models.RegionECA, baseTime.Add(-time.Hour)), merchant)
	require.NoError(t, err)
	// later than the candidate: excluded
	_, err = engine.Evaluate(ctx, candidate(10, "10.0.0.3", models.RegionHIC, baseTime.Add(time.Minute)), merchant)
	require.NoError(t, err)

	got, err := engine.Evaluate(ctx, candidate(10, "10.0.0.1", models.RegionEAP, baseTime), merchant)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictAllowed, got.Result)

	// same timestamp as the candidate: included
	_, err = engine.Evaluate(ctx, candidate(10, "10.0.0.4", models.RegionLAC, baseTime), merchant)
	require.NoError(t, err)
	got, err = engine.Evaluate(ctx, candidate(10, "10.0.0.5", models.RegionSA, baseTime.Add(-time.Hour+time.Second)), merchant)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictAllowed, got.Result, "only the row at -1h is in the window")

	// window now holds the rows at baseTime and -1h+1s, two other ips and regions
	got, err = engine.Evaluate(ctx, candidate(10, "10.0.0.1", models.RegionEAP, baseTime), merchant)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictManualProcessing, got.Result)
	assert.Equal(t, "ip-correlation, region-correlation", got.Info())
}

func TestEngine_Evaluate_Deterministic(t *testing.T) {
	first, _ := newMemoryEngine(t)
	second, _ := newMemoryEngine(t)
	c := candidate(700, "10.0.0.1", models.RegionMENA, baseTime)

	a, err := first.Evaluate(context.Background(), c, merchant)
	require.NoError(t, err)
	b, err := second.Evaluate(context.Background(), c, merchant)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEngine_Evaluate_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		candidate screening.Candidate
		actor     string
		wantCode  pkg.ErrorCode
	}{
		{name: "zero amount", candidate: candidate(0, "10.0.0.1", models.RegionEAP, baseTime), actor: merchant, wantCode: pkg.ErrInvalidInputCode},
		{name: "negative amount", candidate: candidate(-5, "10.0.0.1", models.RegionEAP, baseTime), actor: merchant, wantCode: pkg.ErrInvalidInputCode},
		{name: "empty ip", candidate: candidate(10, "", models.RegionEAP, baseTime), actor: merchant, wantCode: pkg.ErrInvalidInputCode},
		{name: "malformed ip", candidate: candidate(10, "300.1.1.1", models.RegionEAP, baseTime), actor: merchant, wantCode: pkg.ErrInvalidInputCode},
		{name: "unknown region", candidate: candidate(10, "10.0.0.1", models.Region("XX"), baseTime), actor: merchant, wantCode: pkg.ErrInvalidInputCode},
		{name: "missing date", candidate: candidate(10, "10.0.0.1", models.RegionEAP, time.Time{}), actor: merchant, wantCode: pkg.ErrInvalidInputCode},
		{name: "unknown user", candidate: candidate(10, "10.0.0.1", models.RegionEAP, baseTime), actor: "ghost", wantCode: pkg.ErrRecordNotFoundCode},
		{name: "locked user", candidate: candidate(10, "10.0.0.1", models.RegionEAP, baseTime), actor: "locked", wantCode: pkg.ErrUnauthorizedCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, store := newMemoryEngine(t)

			_, err := engine.Evaluate(context.Background(), tt.candidate, tt.actor)

			require.Error(t, err)
			assert.True(t, pkg.IsErrorCode(err, tt.wantCode), "got %v", err)
			all, _ := store.FindAll(context.Background())
			assert.Empty(t, all)
		})
	}

	t.Run("invalid card number", func(t *testing.T) {
		engine, _ := newMemoryEngine(t)
		c := candidate(10, "10.0.0.1", models.RegionEAP, baseTime)
		c.Number = "4000008449433402"

		_, err := engine.Evaluate(context.Background(), c, merchant)

		assert.True(t, pkg.IsErrorCode(err, pkg.ErrInvalidInputCode))
	})
}

func TestEngine_Evaluate_ChecksBeforeLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock_screening.NewMockUserDirectory(ctrl)
	engine := screening.NewEngine(screening.EngineConfig{
		Limits:   mock_screening.NewMockLimitStore(ctrl),
		Ledger:   mock_screening.NewMockLedger(ctrl),
		Feedback: mock_screening.NewMockFeedbackStore(ctrl),
		IPs:      mock_screening.NewMockIPBlacklist(ctrl),
		Cards:    mock_screening.NewMockCardBlacklist(ctrl),
		Users:    users,
	})
	users.EXPECT().FindUser(gomock.Any(), "locked").Return(screening.UserStatus{Exists: true, Locked: true}, nil)

	_, err := engine.Evaluate(context.Background(), candidate(10, "10.0.0.1", models.RegionEAP, baseTime), "locked")

	assert.True(t, pkg.IsErrorCode(err, pkg.ErrUnauthorizedCode))
}

func TestEngine_Evaluate_QueriesWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	limits := mock_screening.NewMockLimitStore(ctrl)
	ledger := mock_screening.NewMockLedger(ctrl)
	ips := mock_screening.NewMockIPBlacklist(ctrl)
	cards := mock_screening.NewMockCardBlacklist(ctrl)
	users := mock_screening.NewMockUserDirectory(ctrl)
	engine := screening.NewEngine(screening.EngineConfig{Limits: limits, Ledger: ledger, IPs: ips, Cards: cards, Users: users})

	c := candidate(300, "10.0.0.1", models.RegionEAP, baseTime)
	gomock.InOrder(
		users.EXPECT().FindUser(gomock.Any(), merchant).Return(screening.UserStatus{Exists: true}, nil),
		limits.EXPECT().Read(gomock.Any()).Return(models.FraudLimits{MaxAllowed: 500, MaxManualProcessing: 900}, nil),
	)
	ips.EXPECT().ContainsIP(gomock.Any(), c.IP).Return(false, nil)
	cards.EXPECT().ContainsCard(gomock.Any(), c.Number).Return(false, nil)
	ledger.EXPECT().FindByCardSince(gomock.Any(), c.Number, baseTime.Add(-time.Hour), baseTime).Return(nil, nil)
	ledger.EXPECT().Append(gomock.Any(), models.Transaction{
		Amount: 300, IP: c.IP, Number: c.Number, Region: c.Region, Date: c.Date, Result: models.VerdictAllowed,
	}).Return(int64(42), nil)

	got, err := engine.Evaluate(context.Background(), c, merchant)

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.TransactionID)
	assert.Equal(t, models.VerdictAllowed, got.Result)
}

func TestEngine_Evaluate_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	limits := mock_screening.NewMockLimitStore(ctrl)
	users := mock_screening.NewMockUserDirectory(ctrl)
	engine := screening.NewEngine(screening.EngineConfig{Limits: limits, Users: users})

	users.EXPECT().FindUser(gomock.Any(), merchant).Return(screening.UserStatus{Exists: true}, nil)
	limits.EXPECT().Read(gomock.Any()).Return(models.FraudLimits{}, errors.New("connection refused"))

	_, err := engine.Evaluate(context.Background(), candidate(10, "10.0.0.1", models.RegionEAP, baseTime), merchant)

	assert.True(t, pkg.IsErrorCode(err, pkg.ErrServerCode))
}

func TestEngine_Evaluate_Concurrent(t *testing.T) {
	engine, store := newMemoryEngine(t)
	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := engine.Evaluate(context.Background(), candidate(10, "10.0.0.1", models.RegionEAP, baseTime.Add(time.Duration(i)*time.Second)), merchant)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := store.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, workers)
	for i, txn := range all {
		assert.Equal(t, int64(i+1), txn.ID)
	}
}

func TestEngine_SubmitFeedback(t *testing.T) {
	engine, store := newMemoryEngine(t)
	ctx := context.Background()

	eval, err := engine.Evaluate(ctx, candidate(1800, "10.0.0.1", models.RegionEAP, baseTime), merchant)
	require.NoError(t, err)
	require.Equal(t, models.VerdictProhibited, eval.Result)

	txn, err := engine.SubmitFeedback(ctx, eval.TransactionID, "MANUAL_PROCESSING")
	require.NoError(t, err)
	require.NotNil(t, txn.Feedback)
	assert.Equal(t, models.VerdictManualProcessing, *txn.Feedback)
	assert.Equal(t, models.VerdictProhibited, txn.Result)
	assert.Equal(t, int64(1800), txn.Amount)

	limits, err := engine.Limits(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.FraudLimits{MaxAllowed: 200, MaxManualProcessing: 1560}, limits)

	stored, err := store.FindByID(ctx, eval.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictManualProcessing, *stored.Feedback)
}

func TestEngine_SubmitFeedback_Rejections(t *testing.T) {
	engine, _ := newMemoryEngine(t)
	ctx := context.Background()

	eval, err := engine.Evaluate(ctx, candidate(250, "10.0.0.1", models.RegionEAP, baseTime), merchant)
	require.NoError(t, err)
	require.Equal(t, models.VerdictManualProcessing, eval.Result)

	_, err = engine.SubmitFeedback(ctx, 999, "ALLOWED")
	assert.True(t, pkg.IsErrorCode(err, pkg.ErrRecordNotFoundCode))

	_, err = engine.SubmitFeedback(ctx, eval.TransactionID, "MAYBE")
	assert.True(t, pkg.IsErrorCode(err, pkg.ErrInvalidInputCode))

	_, err = engine.SubmitFeedback(ctx, eval.TransactionID, "MANUAL_PROCESSING")
	assert.True(t, pkg.IsErrorCode(err, pkg.ErrBusinessRuleCode))

	limits, err := engine.Limits(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFraudLimits(), limits)

	_, err = engine.SubmitFeedback(ctx, eval.TransactionID, "ALLOWED")
	require.NoError(t, err)

	for _, value := range []string{"ALLOWED", "MANUAL_PROCESSING", "PROHIBITED"} {
		_, err = engine.SubmitFeedback(ctx, eval.TransactionID, value)
		assert.True(t, pkg.IsErrorCode(err, pkg.ErrConflictCode), value)
	}

	limits, err = engine.Limits(ctx)
	require.NoError(t, err)
	// ceil(0.8*200 + 0.2*250)
	assert.Equal(t, models.FraudLimits{MaxAllowed: 210, MaxManualProcessing: 1500}, limits)
}

func TestEngine_SubmitFeedback_ConcurrentSameTransaction(t *testing.T) {
	engine, _ := newMemoryEngine(t)
	ctx := context.Background()

	eval, err := engine.Evaluate(ctx, candidate(1800, "10.0.0.1", models.RegionEAP, baseTime), merchant)
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.SubmitFeedback(ctx, eval.TransactionID, "ALLOWED")
			switch {
			case err == nil:
				succeeded.Add(1)
			case pkg.IsErrorCode(err, pkg.ErrConflictCode):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(15), conflicts.Load())

	limits, err := engine.Limits(ctx)
	require.NoError(t, err)
	// ceil(0.8*200 + 0.2*1800), ceil(0.8*1500 + 0.2*1800)
	assert.Equal(t, models.FraudLimits{MaxAllowed: 520, MaxManualProcessing: 1560}, limits)
}

func TestEngine_SubmitFeedback_NoLostUpdates(t *testing.T) {
	engine, _ := newMemoryEngine(t)
	ctx := context.Background()

	const n = 20
	ids := make([]int64, n)
	for i := range ids {
		eval, err := engine.Evaluate(ctx, candidate(250, "10.0.0.1", models.RegionEAP, baseTime.Add(time.Duration(i)*2*time.Hour)), merchant)
		require.NoError(t, err)
		require.Equal(t, models.VerdictManualProcessing, eval.Result)
		ids[i] = eval.TransactionID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := engine.SubmitFeedback(ctx, id, "ALLOWED")
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	want := models.DefaultFraudLimits()
	for range ids {
		want = screening.AdjustLimits(want, models.VerdictManualProcessing, models.VerdictAllowed, 250)
	}
	limits, err := engine.Limits(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, limits)
}

func TestEngine_ResetLimits(t *testing.T) {
	engine, _ := newMemoryEngine(t)
	ctx := context.Background()

	eval, err := engine.Evaluate(ctx, candidate(1800, "10.0.0.1", models.RegionEAP, baseTime), merchant)
	require.NoError(t, err)
	_, err = engine.SubmitFeedback(ctx, eval.TransactionID, "MANUAL_PROCESSING")
	require.NoError(t, err)

	limits, err := engine.ResetLimits(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFraudLimits(), limits)

	limits, err = engine.Limits(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFraudLimits(), limits)
}

func TestEngine_ResetLimits_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	limits := mock_screening.NewMockLimitStore(ctrl)
	limits.EXPECT().AtomicUpdate(gomock.Any(), gomock.Any()).Return(models.FraudLimits{}, errors.New("connection reset"))

	engine := screening.NewEngine(screening.EngineConfig{Limits: limits})
	_, err := engine.ResetLimits(context.Background())
	assert.True(t, pkg.IsErrorCode(err, pkg.ErrServerCode))
}
