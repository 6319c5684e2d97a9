package screening

import (
	"context"
	"errors"
	"time"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
)

// Sentinel errors returned by store implementations. The engine maps them to AppErrors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

//go:generate mockgen -destination=mocks/mock_store.go -source=store.go

// IPBlacklist answers membership questions about suspicious IP addresses.
type IPBlacklist interface {
	ContainsIP(ctx context.Context, ip string) (bool, error)
}

// CardBlacklist answers membership questions about stolen card numbers.
type CardBlacklist interface {
	ContainsCard(ctx context.Context, number string) (bool, error)
}

// UserStatus is what the engine needs to know about the acting principal.
type UserStatus struct {
	Exists bool
	Locked bool
}

// UserDirectory resolves the acting principal.
type UserDirectory interface {
	FindUser(ctx context.Context, username string) (UserStatus, error)
}

// Ledger is the append-only store of evaluated transactions.
type Ledger interface {
	// Append persists txn and returns its assigned id.
	Append(ctx context.Context, txn models.Transaction) (int64, error)
	// FindByCardSince returns transactions for number with date in (since, until], ordered by id.
	// Implementations must answer from one consistent snapshot.
	FindByCardSince(ctx context.Context, number string, since, until time.Time) ([]models.Transaction, error)
	// FindByID returns ErrNotFound when id is unknown.
	FindByID(ctx context.Context, id int64) (models.Transaction, error)
	FindAll(ctx context.Context) ([]models.Transaction, error)
	FindByCard(ctx context.Context, number string) ([]models.Transaction, error)
}

// LimitStore owns the single threshold pair.
type LimitStore interface {
	// Read returns both thresholds from the same committed write.
	Read(ctx context.Context) (models.FraudLimits, error)
	// AtomicUpdate applies fn as one read-modify-write unit and returns the stored pair.
	// Administrative changes such as Engine.ResetLimits use it; feedback goes through
	// FeedbackStore so the transaction and the limits change together.
	AtomicUpdate(ctx context.Context, fn func(models.FraudLimits) (models.FraudLimits, error)) (models.FraudLimits, error)
}

// Correction is the outcome of validating feedback against a stored transaction.
type Correction struct {
	Feedback models.Verdict
	Limits   models.FraudLimits
}

// CorrectionFunc decides a correction while the store holds the transaction and limits exclusively.
// Returning an error aborts the unit without any write.
type CorrectionFunc func(txn models.Transaction, limits models.FraudLimits) (Correction, error)

// FeedbackStore records feedback and the adjusted limits as one atomic unit.
// Concurrent calls for the same transaction id are serialized, so at most one can observe
// an unset feedback field.
type FeedbackStore interface {
	ApplyFeedback(ctx context.Context, id int64, fn CorrectionFunc) (models.Transaction, error)
}

// BlacklistStore manages suspicious IPs and stolen cards.
type BlacklistStore interface {
	IPBlacklist
	CardBlacklist
	AddIP(ctx context.Context, ip string) (models.SuspiciousIP, error)
	RemoveIP(ctx context.Context, ip string) error
	ListIPs(ctx context.Context) ([]models.SuspiciousIP, error)
	AddCard(ctx context.Context, number string) (models.StolenCard, error)
	RemoveCard(ctx context.Context, number string) error
	ListCards(ctx context.Context) ([]models.StolenCard, error)
}
