package views

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
)

// LocalDateTimeLayout is the zone-less timestamp format clients send, read as UTC.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// DateTime accepts RFC3339 or zone-less timestamps and renders the zone-less form.
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.ParseInLocation(LocalDateTimeLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("date %q: expected %s or RFC3339", s, LocalDateTimeLayout)
	}
	d.Time = t
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(LocalDateTimeLayout))
}

type TransactionRequest struct {
	Amount int64    `json:"amount" binding:"required"`
	IP     string   `json:"ip" binding:"required"`
	Number string   `json:"number" binding:"required"`
	Region string   `json:"region" binding:"required"`
	Date   DateTime `json:"date"`
}

type VerdictResponse struct {
	Result string `json:"result"`
	Info   string `json:"info"`
}

type FeedbackRequest struct {
	TransactionID int64  `json:"transactionId" binding:"required"`
	Feedback      string `json:"feedback" binding:"required"`
}

// TransactionResponse is a ledger record. Feedback is "" until set.
type TransactionResponse struct {
	TransactionID int64    `json:"transactionId"`
	Amount        int64    `json:"amount"`
	IP            string   `json:"ip"`
	Number        string   `json:"number"`
	Region        string   `json:"region"`
	Date          DateTime `json:"date"`
	Result        string   `json:"result"`
	Feedback      string   `json:"feedback"`
}

func ToTransactionResponse(t models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: t.ID,
		Amount:        t.Amount,
		IP:            t.IP,
		Number:        t.Number,
		Region:        string(t.Region),
		Date:          DateTime{Time: t.Date},
		Result:        string(t.Result),
	}
	if t.Feedback != nil {
		resp.Feedback = string(*t.Feedback)
	}
	return resp
}

func ToTransactionResponses(txns []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

type LimitsResponse struct {
	MaxAllowed          int64 `json:"maxAllowed"`
	MaxManualProcessing int64 `json:"maxManualProcessing"`
}

// QueuedResponse acknowledges a transaction accepted for asynchronous screening.
type QueuedResponse struct {
	RequestID string `json:"requestId"`
}
