package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/database"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/repositories"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/utils"
	"go.uber.org/zap"
)

var (
	_ screening.Ledger         = (*Store)(nil)
	_ screening.LimitStore     = (*Store)(nil)
	_ screening.FeedbackStore  = (*Store)(nil)
	_ screening.BlacklistStore = (*Store)(nil)
	_ screening.UserDirectory  = (*Store)(nil)
)

// Config tunes retries of transactions aborted by serialization failures or deadlocks.
type Config struct {
	RetryAttempts int
	RetryBase     time.Duration
	RetryMax      time.Duration
}

// Store implements the engine's collaborators on top of PostgreSQL.
type Store struct {
	db           *database.DB
	logger       *zap.Logger
	cfg          Config
	transactions repositories.TransactionRepository
	limits       repositories.LimitsRepository
	ips          repositories.SuspiciousIPRepository
	cards        repositories.StolenCardRepository
	users        repositories.UserRepository
}

func NewStore(db *database.DB, logger *zap.Logger, cfg Config) *Store {
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 20 * time.Millisecond
	}
	if cfg.RetryMax <= 0 {
		cfg.RetryMax = 500 * time.Millisecond
	}
	return &Store{
		db:           db,
		logger:       logger,
		cfg:          cfg,
		transactions: repositories.NewTransactionRepository(),
		limits:       repositories.NewLimitsRepository(),
		ips:          repositories.NewSuspiciousIPRepository(),
		cards:        repositories.NewStolenCardRepository(),
		users:        repositories.NewUserRepository(),
	}
}

// withRetry runs fn in a write transaction, retrying on serialization failures and deadlocks.
func (s *Store) withRetry(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	attempt := 0
	return utils.RetryWithBackoff(ctx, s.cfg.RetryAttempts, s.cfg.RetryBase, s.cfg.RetryMax, pkg.IsSerializationFailure, func() error {
		attempt++
		err := s.db.WithTransaction(ctx, fn)
		if pkg.IsSerializationFailure(err) {
			s.logger.Warn("transaction_retry", zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)), zap.Int("attempt", attempt), zap.Error(err))
		}
		return err
	})
}

func (s *Store) FindUser(ctx context.Context, username string) (screening.UserStatus, error) {
	user, err := s.users.FindByUsername(ctx, s.db, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return screening.UserStatus{}, nil
	}
	if err != nil {
		return screening.UserStatus{}, s.sqlError(ctx, err)
	}
	return screening.UserStatus{Exists: true, Locked: user.Locked}, nil
}

// Read returns the limits row, creating the default row if it is missing.
func (s *Store) Read(ctx context.Context) (models.FraudLimits, error) {
	limits, err := s.limits.Find(ctx, s.db)
	if !errors.Is(err, pgx.ErrNoRows) {
		return limits, s.sqlError(ctx, err)
	}
	if err = s.limits.EnsureDefaults(ctx, s.db); err != nil {
		return models.FraudLimits{}, s.sqlError(ctx, err)
	}
	// The row was just written on the primary; a replica may lag behind.
	return models.DefaultFraudLimits(), nil
}

// lockLimits returns the limits row locked for the rest of tx.
func (s *Store) lockLimits(ctx context.Context, tx pgx.Tx) (models.FraudLimits, error) {
	limits, err := s.limits.FindForUpdate(ctx, tx)
	if !errors.Is(err, pgx.ErrNoRows) {
		return limits, err
	}
	if err = s.limits.EnsureDefaults(ctx, tx); err != nil {
		return models.FraudLimits{}, err
	}
	return s.limits.FindForUpdate(ctx, tx)
}

func (s *Store) AtomicUpdate(ctx context.Context, fn func(models.FraudLimits) (models.FraudLimits, error)) (models.FraudLimits, error) {
	var next models.FraudLimits
	err := s.withRetry(ctx, func(ctx context.Context, tx pgx.Tx) error {
		current, err := s.lockLimits(ctx, tx)
		if err != nil {
			return err
		}
		if next, err = fn(current); err != nil {
			return err
		}
		return s.limits.Update(ctx, tx, next)
	})
	return next, s.sqlError(ctx, err)
}

func (s *Store) Append(ctx context.Context, txn models.Transaction) (int64, error) {
	var id int64
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		id, err = s.transactions.Create(ctx, tx, txn)
		return err
	})
	return id, s.sqlError(ctx, err)
}

// FindByCardSince reads the window from a single snapshot.
func (s *Store) FindByCardSince(ctx context.Context, number string, since, until time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.WithSnapshot(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		txns, err = s.transactions.FindByNumberBetween(ctx, tx, number, since, until)
		return err
	})
	return txns, s.sqlError(ctx, err)
}

func (s *Store) FindByID(ctx context.Context, id int64) (models.Transaction, error) {
	txn, err := s.transactions.FindByID(ctx, s.db, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, fmt.Errorf("%w: transaction %d", screening.ErrNotFound, id)
	}
	return txn, s.sqlError(ctx, err)
}

func (s *Store) FindAll(ctx context.Context) ([]models.Transaction, error) {
	txns, err := s.transactions.FindAll(ctx, s.db)
	return txns, s.sqlError(ctx, err)
}

func (s *Store) FindByCard(ctx context.Context, number string) ([]models.Transaction, error) {
	txns, err := s.transactions.FindByNumber(ctx, s.db, number)
	return txns, s.sqlError(ctx, err)
}

// ApplyFeedback locks the transaction row, then the limits row, and writes both in one transaction.
// The lock order is fixed so concurrent corrections cannot deadlock each other.
func (s *Store) ApplyFeedback(ctx context.Context, id int64, fn screening.CorrectionFunc) (models.Transaction, error) {
	var result models.Transaction
	err := s.withRetry(ctx, func(ctx context.Context, tx pgx.Tx) error {
		txn, err := s.transactions.FindByIDForUpdate(ctx, tx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: transaction %d", screening.ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		limits, err := s.lockLimits(ctx, tx)
		if err != nil {
			return err
		}
		correction, err := fn(txn, limits)
		if err != nil {
			return err
		}
		if err = s.transactions.UpdateFeedback(ctx, tx, id, correction.Feedback); err != nil {
			return err
		}
		if err = s.limits.Update(ctx, tx, correction.Limits); err != nil {
			return err
		}
		feedback := correction.Feedback
		txn.Feedback = &feedback
		result = txn
		return nil
	})
	return result, s.sqlError(ctx, err)
}

func (s *Store) ContainsIP(ctx context.Context, ip string) (bool, error) {
	found, err := s.ips.Exists(ctx, s.db, ip)
	return found, s.sqlError(ctx, err)
}

func (s *Store) AddIP(ctx context.Context, ip string) (models.SuspiciousIP, error) {
	var entry models.SuspiciousIP
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		entry, err = s.ips.Create(ctx, tx, ip)
		return err
	})
	if err = s.sqlError(ctx, err); pkg.IsErrorCode(err, pkg.ErrSQLDuplicateCode) {
		return models.SuspiciousIP{}, fmt.Errorf("%w: ip %s", screening.ErrDuplicate, ip)
	}
	return entry, err
}

func (s *Store) RemoveIP(ctx context.Context, ip string) error {
	return s.sqlError(ctx, s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		n, err := s.ips.Delete(ctx, tx, ip)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: ip %s", screening.ErrNotFound, ip)
		}
		return nil
	}))
}

func (s *Store) ListIPs(ctx context.Context) ([]models.SuspiciousIP, error) {
	entries, err := s.ips.FindAll(ctx, s.db)
	return entries, s.sqlError(ctx, err)
}

func (s *Store) ContainsCard(ctx context.Context, number string) (bool, error) {
	found, err := s.cards.Exists(ctx, s.db, number)
	return found, s.sqlError(ctx, err)
}

func (s *Store) AddCard(ctx context.Context, number string) (models.StolenCard, error) {
	var entry models.StolenCard
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		entry, err = s.cards.Create(ctx, tx, number)
		return err
	})
	if err = s.sqlError(ctx, err); pkg.IsErrorCode(err, pkg.ErrSQLDuplicateCode) {
		return models.StolenCard{}, fmt.Errorf("%w: card", screening.ErrDuplicate)
	}
	return entry, err
}

func (s *Store) RemoveCard(ctx context.Context, number string) error {
	return s.sqlError(ctx, s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		n, err := s.cards.Delete(ctx, tx, number)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: card", screening.ErrNotFound)
		}
		return nil
	}))
}

func (s *Store) ListCards(ctx context.Context) ([]models.StolenCard, error) {
	entries, err := s.cards.FindAll(ctx, s.db)
	return entries, s.sqlError(ctx, err)
}

// sqlError maps driver failures to typed AppErrors. Store sentinels and errors already
// decided by the caller pass through unchanged.
func (s *Store) sqlError(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, screening.ErrNotFound) || errors.Is(err, screening.ErrDuplicate) {
		return err
	}
	var appErr pkg.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return pkg.HandleSQLError(pkg.TraceIDFrom(ctx), s.logger, err)
}
