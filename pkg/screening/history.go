package screening

import (
	"context"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
)

// HistoryAll returns every recorded transaction ordered by id.
func (e *Engine) HistoryAll(ctx context.Context) ([]models.Transaction, error) {
	txns, err := e.ledger.FindAll(ctx)
	if err != nil {
		return nil, storageError("failed to read history", err)
	}
	return txns, nil
}

// HistoryByCard returns the transactions of one card ordered by id.
// The number is validated before any lookup; an empty result is NotFound.
func (e *Engine) HistoryByCard(ctx context.Context, number string) ([]models.Transaction, error) {
	if !IsValidCardNumber(number) {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "card number is invalid", nil)
	}
	txns, err := e.ledger.FindByCard(ctx, number)
	if err != nil {
		return nil, storageError("failed to read history", err)
	}
	if len(txns) == 0 {
		return nil, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "no transactions for card", nil)
	}
	return txns, nil
}
