package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
)

// LimitsRepository defines the interface for the single-row fraud_limits table.
type LimitsRepository interface {
	// EnsureDefaults inserts the default row if it does not exist yet.
	EnsureDefaults(ctx context.Context, q Querier) error
	Find(ctx context.Context, q Querier) (models.FraudLimits, error)
	// FindForUpdate locks the row until tx ends.
	FindForUpdate(ctx context.Context, tx pgx.Tx) (models.FraudLimits, error)
	Update(ctx context.Context, tx pgx.Tx, limits models.FraudLimits) error
}

type LimitsRepositoryImpl struct {
}

func NewLimitsRepository() LimitsRepository {
	return &LimitsRepositoryImpl{}
}

func (r LimitsRepositoryImpl) EnsureDefaults(ctx context.Context, q Querier) error {
	defaults := models.DefaultFraudLimits()
	_, err := q.Exec(ctx, `
		INSERT INTO fraud_limits (id, max_allowed, max_manual_processing)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO NOTHING`,
		defaults.MaxAllowed, defaults.MaxManualProcessing)
	return err
}

func (r LimitsRepositoryImpl) Find(ctx context.Context, q Querier) (models.FraudLimits, error) {
	var limits models.FraudLimits
	err := q.QueryRow(ctx, `SELECT max_allowed, max_manual_processing FROM fraud_limits WHERE id = 1`).
		Scan(&limits.MaxAllowed, &limits.MaxManualProcessing)
	return limits, err
}

func (r LimitsRepositoryImpl) FindForUpdate(ctx context.Context, tx pgx.Tx) (models.FraudLimits, error) {
	var limits models.FraudLimits
	err := tx.QueryRow(ctx, `SELECT max_allowed, max_manual_processing FROM fraud_limits WHERE id = 1 FOR UPDATE`).
		Scan(&limits.MaxAllowed, &limits.MaxManualProcessing)
	return limits, err
}

func (r LimitsRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, limits models.FraudLimits) error {
	_, err := tx.Exec(ctx, `
		UPDATE fraud_limits SET max_allowed = $1, max_manual_processing = $2, updated_at = NOW()
		WHERE id = 1`,
		limits.MaxAllowed, limits.MaxManualProcessing)
	return err
}
