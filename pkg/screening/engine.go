package screening

import (
	"context"
	"errors"
	"time"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"go.uber.org/zap"
)

// Candidate is a transaction submitted for screening.
type Candidate struct {
	Amount int64
	IP     string
	Number string
	Region models.Region
	Date   time.Time
}

// Evaluation is the outcome of screening one candidate.
type Evaluation struct {
	TransactionID int64
	Result        models.Verdict
	Reasons       Reasons
}

// Info is the human readable reason list, or "none".
func (e Evaluation) Info() string {
	return e.Reasons.Info()
}

// EngineConfig wires the engine to its collaborators.
type EngineConfig struct {
	Logger   *zap.Logger
	Limits   LimitStore
	Ledger   Ledger
	Feedback FeedbackStore
	IPs      IPBlacklist
	Cards    CardBlacklist
	Users    UserDirectory
}

// Engine screens transactions and adapts its thresholds from feedback.
// It is safe for concurrent use; all shared state lives in the stores.
type Engine struct {
	logger   *zap.Logger
	limits   LimitStore
	ledger   Ledger
	feedback FeedbackStore
	ips      IPBlacklist
	cards    CardBlacklist
	users    UserDirectory
}

func NewEngine(cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:   logger,
		limits:   cfg.Limits,
		ledger:   cfg.Ledger,
		feedback: cfg.Feedback,
		ips:      cfg.IPs,
		cards:    cfg.Cards,
		users:    cfg.Users,
	}
}

// Evaluate screens c on behalf of actor, records it in the ledger and returns the verdict.
func (e *Engine) Evaluate(ctx context.Context, c Candidate, actor string) (Evaluation, error) {
	traceID := pkg.TraceIDFrom(ctx)
	if err := validateCandidate(c); err != nil {
		return Evaluation{}, err
	}
	if err := e.checkActor(ctx, actor); err != nil {
		return Evaluation{}, err
	}

	limits, err := e.limits.Read(ctx)
	if err != nil {
		return Evaluation{}, storageError("failed to read limits", err)
	}
	ipListed, err := e.ips.ContainsIP(ctx, c.IP)
	if err != nil {
		return Evaluation{}, storageError("failed to check ip blacklist", err)
	}
	cardListed, err := e.cards.ContainsCard(ctx, c.Number)
	if err != nil {
		return Evaluation{}, storageError("failed to check card blacklist", err)
	}
	history, err := e.ledger.FindByCardSince(ctx, c.Number, c.Date.Add(-CorrelationWindow), c.Date)
	if err != nil {
		return Evaluation{}, storageError("failed to read card history", err)
	}

	signals := Signals{
		Amount:     c.Amount,
		Limits:     limits,
		IPListed:   ipListed,
		CardListed: cardListed,
	}
	signals.RegionCount, signals.IPCount = CountCorrelations(c, history)
	reasons := CollectReasons(signals)
	result := DeriveVerdict(signals, reasons)

	id, err := e.ledger.Append(ctx, models.Transaction{
		Amount: c.Amount,
		IP:     c.IP,
		Number: c.Number,
		Region: c.Region,
		Date:   c.Date,
		Result: result,
	})
	if err != nil {
		return Evaluation{}, storageError("failed to record transaction", err)
	}

	verdictsTotal.WithLabelValues(string(result)).Inc()
	for _, r := range reasons.Items() {
		reasonsTotal.WithLabelValues(string(r)).Inc()
	}
	e.logger.Info("transaction_evaluated",
		zap.String(pkg.TraceId, traceID),
		zap.Int64(pkg.TransactionId, id),
		zap.String("result", string(result)),
		zap.String("info", reasons.Info()),
		zap.Int64("amount", c.Amount),
		zap.Int64("max_allowed", limits.MaxAllowed),
		zap.Int64("max_manual_processing", limits.MaxManualProcessing),
	)
	return Evaluation{TransactionID: id, Result: result, Reasons: reasons}, nil
}

func (e *Engine) checkActor(ctx context.Context, actor string) error {
	if actor == "" {
		return pkg.NewAppError(pkg.ErrRecordNotFoundCode, "user not found", nil)
	}
	status, err := e.users.FindUser(ctx, actor)
	if err != nil {
		return storageError("failed to look up user", err)
	}
	if !status.Exists {
		return pkg.NewAppError(pkg.ErrRecordNotFoundCode, "user not found", nil)
	}
	if status.Locked {
		return pkg.NewAppError(pkg.ErrUnauthorizedCode, "user is locked", nil)
	}
	return nil
}

func validateCandidate(c Candidate) error {
	switch {
	case c.Amount <= 0:
		return pkg.NewAppError(pkg.ErrInvalidInputCode, "amount must be greater than zero", nil)
	case c.IP == "" || !IsValidIPv4(c.IP):
		return pkg.NewAppError(pkg.ErrInvalidInputCode, "ip must be a dotted-quad IPv4 address", nil)
	case c.Number == "" || !IsValidCardNumber(c.Number):
		return pkg.NewAppError(pkg.ErrInvalidInputCode, "card number is invalid", nil)
	case !c.Region.Valid():
		return pkg.NewAppError(pkg.ErrInvalidInputCode, "region is invalid", nil)
	case c.Date.IsZero():
		return pkg.NewAppError(pkg.ErrInvalidInputCode, "date is required", nil)
	}
	return nil
}

// storageError keeps AppErrors raised by a store and wraps anything else as an internal failure.
func storageError(msg string, err error) error {
	var appErr pkg.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return pkg.NewAppError(pkg.ErrServerCode, msg, err)
}
