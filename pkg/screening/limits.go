package screening

import (
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/shopspring/decimal"
)

var (
	limitWeight  = decimal.RequireFromString("0.8")
	amountWeight = decimal.RequireFromString("0.2")
)

// raise returns ceil(0.8*limit + 0.2*amount).
func raise(limit, amount int64) int64 {
	return limitWeight.Mul(decimal.NewFromInt(limit)).
		Add(amountWeight.Mul(decimal.NewFromInt(amount))).
		Ceil().IntPart()
}

// lower returns ceil(0.8*limit - 0.2*amount).
func lower(limit, amount int64) int64 {
	return limitWeight.Mul(decimal.NewFromInt(limit)).
		Sub(amountWeight.Mul(decimal.NewFromInt(amount))).
		Ceil().IntPart()
}

// AdjustLimits moves the thresholds toward the amount of a transaction whose verdict result was
// corrected to feedback. Limits are neither floored nor reordered. feedback must differ from result.
func AdjustLimits(limits models.FraudLimits, result, feedback models.Verdict, amount int64) models.FraudLimits {
	next := limits
	switch feedback {
	case models.VerdictAllowed:
		next.MaxAllowed = raise(limits.MaxAllowed, amount)
		if result == models.VerdictProhibited {
			next.MaxManualProcessing = raise(limits.MaxManualProcessing, amount)
		}
	case models.VerdictManualProcessing:
		switch result {
		case models.VerdictAllowed:
			next.MaxAllowed = lower(limits.MaxAllowed, amount)
		case models.VerdictProhibited:
			next.MaxManualProcessing = raise(limits.MaxManualProcessing, amount)
		}
	case models.VerdictProhibited:
		switch result {
		case models.VerdictAllowed:
			next.MaxAllowed = lower(limits.MaxAllowed, amount)
			next.MaxManualProcessing = lower(limits.MaxManualProcessing, amount)
		case models.VerdictManualProcessing:
			next.MaxManualProcessing = lower(limits.MaxManualProcessing, amount)
		}
	}
	return next
}
