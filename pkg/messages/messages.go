package messages

import (
	"encoding/json"
	"time"
)

// Candidate is a transaction queued for screening on the candidate topic.
type Candidate struct {
	RequestID string    `json:"requestId" validate:"required"`
	Username  string    `json:"username" validate:"required"`
	Amount    int64     `json:"amount" validate:"gt=0"`
	IP        string    `json:"ip" validate:"required,ipv4"`
	Number    string    `json:"number" validate:"required,numeric,min=13,max=19"`
	Region    string    `json:"region" validate:"required,oneof=EAP ECA HIC LAC MENA SA SSA"`
	Date      time.Time `json:"date" validate:"required"`
}

// Verdict is published on the verdict topic once a candidate has been screened and recorded.
type Verdict struct {
	RequestID     string    `json:"requestId"`
	TransactionID int64     `json:"transactionId"`
	Result        string    `json:"result"`
	Info          string    `json:"info"`
	EvaluatedAt   time.Time `json:"evaluatedAt"`
}

// DeadLetter wraps a candidate payload that could not be screened.
type DeadLetter struct {
	Payload       json.RawMessage `json:"payload"`
	FailureReason string          `json:"failureReason"`
	Error         string          `json:"error"`
	Attempts      int             `json:"attempts"`
	FailedAt      string          `json:"failedAt"`
}
