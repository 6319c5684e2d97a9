package models

const (
	DefaultMaxAllowed          int64 = 200
	DefaultMaxManualProcessing int64 = 1500
)

// FraudLimits maps to the single-row table `fraud_limits`.
type FraudLimits struct {
	MaxAllowed          int64
	MaxManualProcessing int64
}

// DefaultFraudLimits returns the thresholds a fresh deployment starts with.
func DefaultFraudLimits() FraudLimits {
	return FraudLimits{MaxAllowed: DefaultMaxAllowed, MaxManualProcessing: DefaultMaxManualProcessing}
}
