package models

import "time"

// Transaction maps to table `transactions`.
// Result is fixed at creation; Feedback is nil until a correction is recorded, then never changes.
type Transaction struct {
	ID       int64
	Amount   int64
	IP       string
	Number   string
	Region   Region
	Date     time.Time
	Result   Verdict
	Feedback *Verdict
}

// HasFeedback reports whether a correction has already been recorded.
func (t Transaction) HasFeedback() bool {
	return t.Feedback != nil
}
