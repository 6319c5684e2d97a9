package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LimitsDefaultLazily(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	limits, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFraudLimits(), limits)

	next, err := s.AtomicUpdate(ctx, func(l models.FraudLimits) (models.FraudLimits, error) {
		l.MaxAllowed++
		return l, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(201), next.MaxAllowed)

	_, err = s.AtomicUpdate(ctx, func(l models.FraudLimits) (models.FraudLimits, error) {
		return models.FraudLimits{}, errors.New("abort")
	})
	require.Error(t, err)
	limits, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(201), limits.MaxAllowed)
}

func TestStore_ApplyFeedback_AbortLeavesStateUntouched(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	id, err := s.Append(ctx, models.Transaction{Amount: 10, Number: "4000008449433403", Date: time.Now(), Result: models.VerdictAllowed})
	require.NoError(t, err)

	_, err = s.ApplyFeedback(ctx, id, func(models.Transaction, models.FraudLimits) (screening.Correction, error) {
		return screening.Correction{}, errors.New("rejected")
	})
	require.EqualError(t, err, "rejected")

	txn, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, txn.Feedback)

	_, err = s.ApplyFeedback(ctx, 7, nil)
	assert.ErrorIs(t, err, screening.ErrNotFound)
}

func TestStore_ReturnedTransactionsAreCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	id, err := s.Append(ctx, models.Transaction{Amount: 10, Number: "4000008449433403", Result: models.VerdictAllowed})
	require.NoError(t, err)
	_, err = s.ApplyFeedback(ctx, id, func(txn models.Transaction, l models.FraudLimits) (screening.Correction, error) {
		return screening.Correction{Feedback: models.VerdictProhibited, Limits: l}, nil
	})
	require.NoError(t, err)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	*all[0].Feedback = models.VerdictAllowed

	txn, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictProhibited, *txn.Feedback)
}
