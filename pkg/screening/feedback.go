package screening

import (
	"context"
	"errors"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"go.uber.org/zap"
)

// SubmitFeedback records a human correction of transaction id's verdict and adapts the limits.
// The feedback write and the limit update happen as one atomic unit or not at all.
func (e *Engine) SubmitFeedback(ctx context.Context, id int64, feedback string) (models.Transaction, error) {
	traceID := pkg.TraceIDFrom(ctx)
	var before, after models.FraudLimits

	txn, err := e.feedback.ApplyFeedback(ctx, id, func(txn models.Transaction, limits models.FraudLimits) (Correction, error) {
		verdict, err := models.ParseVerdict(feedback)
		if err != nil {
			return Correction{}, pkg.NewAppError(pkg.ErrInvalidInputCode, "feedback must be one of ALLOWED, MANUAL_PROCESSING, PROHIBITED", err)
		}
		if txn.HasFeedback() {
			return Correction{}, pkg.NewAppError(pkg.ErrConflictCode, "feedback already recorded for transaction", nil)
		}
		if txn.Result == "" {
			return Correction{}, pkg.NewAppError(pkg.ErrBusinessRuleCode, "transaction has no result", nil)
		}
		if txn.Result == verdict {
			return Correction{}, pkg.NewAppError(pkg.ErrBusinessRuleCode, "feedback equals the transaction result", nil)
		}
		before = limits
		after = AdjustLimits(limits, txn.Result, verdict, txn.Amount)
		return Correction{Feedback: verdict, Limits: after}, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Transaction{}, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "transaction not found", err)
		}
		return models.Transaction{}, storageError("failed to apply feedback", err)
	}

	feedbackTotal.WithLabelValues(string(txn.Result), string(*txn.Feedback)).Inc()
	e.logger.Info("feedback_applied",
		zap.String(pkg.TraceId, traceID),
		zap.Int64(pkg.TransactionId, txn.ID),
		zap.String("result", string(txn.Result)),
		zap.String("feedback", string(*txn.Feedback)),
		zap.Int64("max_allowed_before", before.MaxAllowed),
		zap.Int64("max_allowed", after.MaxAllowed),
		zap.Int64("max_manual_processing_before", before.MaxManualProcessing),
		zap.Int64("max_manual_processing", after.MaxManualProcessing),
	)
	return txn, nil
}

// Limits returns the current threshold pair.
func (e *Engine) Limits(ctx context.Context) (models.FraudLimits, error) {
	limits, err := e.limits.Read(ctx)
	if err != nil {
		return models.FraudLimits{}, storageError("failed to read limits", err)
	}
	return limits, nil
}

// ResetLimits restores the default threshold pair, discarding what feedback has learned.
func (e *Engine) ResetLimits(ctx context.Context) (models.FraudLimits, error) {
	var before models.FraudLimits
	limits, err := e.limits.AtomicUpdate(ctx, func(current models.FraudLimits) (models.FraudLimits, error) {
		before = current
		return models.DefaultFraudLimits(), nil
	})
	if err != nil {
		return models.FraudLimits{}, storageError("failed to reset limits", err)
	}
	e.logger.Info("limits_reset",
		zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)),
		zap.Int64("max_allowed_before", before.MaxAllowed),
		zap.Int64("max_manual_processing_before", before.MaxManualProcessing),
	)
	return limits, nil
}
