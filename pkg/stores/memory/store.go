package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
)

var (
	_ screening.Ledger         = (*Store)(nil)
	_ screening.LimitStore     = (*Store)(nil)
	_ screening.FeedbackStore  = (*Store)(nil)
	_ screening.BlacklistStore = (*Store)(nil)
	_ screening.UserDirectory  = (*Store)(nil)
)

// Store keeps every collaborator of the engine in process memory behind one lock.
// Used by tests and by single-replica deployments without Postgres.
type Store struct {
	mu           sync.RWMutex
	limits       *models.FraudLimits
	transactions []models.Transaction // ordered by id; id == index+1
	ips          map[string]models.SuspiciousIP
	cards        map[string]models.StolenCard
	users        map[string]models.User
	nextIPID     int64
	nextCardID   int64
}

func NewStore() *Store {
	return &Store{
		ips:   make(map[string]models.SuspiciousIP),
		cards: make(map[string]models.StolenCard),
		users: make(map[string]models.User),
	}
}

// PutUser inserts or replaces a user.
func (s *Store) PutUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Username] = user
}

func (s *Store) FindUser(_ context.Context, username string) (screening.UserStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return screening.UserStatus{}, nil
	}
	return screening.UserStatus{Exists: true, Locked: user.Locked}, nil
}

// limitsLocked returns the pair, creating the default on first access. Callers hold mu.
func (s *Store) limitsLocked() models.FraudLimits {
	if s.limits == nil {
		defaults := models.DefaultFraudLimits()
		s.limits = &defaults
	}
	return *s.limits
}

func (s *Store) Read(_ context.Context) (models.FraudLimits, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limitsLocked(), nil
}

func (s *Store) AtomicUpdate(_ context.Context, fn func(models.FraudLimits) (models.FraudLimits, error)) (models.FraudLimits, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.limitsLocked())
	if err != nil {
		return models.FraudLimits{}, err
	}
	s.limits = &next
	return next, nil
}

func (s *Store) Append(_ context.Context, txn models.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn.ID = int64(len(s.transactions) + 1)
	txn.Feedback = nil
	s.transactions = append(s.transactions, txn)
	return txn.ID, nil
}

func (s *Store) FindByCardSince(_ context.Context, number string, since, until time.Time) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(t models.Transaction) bool {
		return t.Number == number && t.Date.After(since) && !t.Date.After(until)
	}), nil
}

func (s *Store) FindByID(_ context.Context, id int64) (models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id <= 0 || id > int64(len(s.transactions)) {
		return models.Transaction{}, fmt.Errorf("%w: transaction %d", screening.ErrNotFound, id)
	}
	return copyTransaction(s.transactions[id-1]), nil
}

func (s *Store) FindAll(_ context.Context) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(models.Transaction) bool { return true }), nil
}

func (s *Store) FindByCard(_ context.Context, number string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(t models.Transaction) bool { return t.Number == number }), nil
}

func (s *Store) filterLocked(keep func(models.Transaction) bool) []models.Transaction {
	result := make([]models.Transaction, 0)
	for _, t := range s.transactions {
		if keep(t) {
			result = append(result, copyTransaction(t))
		}
	}
	return result
}

func (s *Store) ApplyFeedback(_ context.Context, id int64, fn screening.CorrectionFunc) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id <= 0 || id > int64(len(s.transactions)) {
		return models.Transaction{}, fmt.Errorf("%w: transaction %d", screening.ErrNotFound, id)
	}
	txn := copyTransaction(s.transactions[id-1])
	correction, err := fn(txn, s.limitsLocked())
	if err != nil {
		return models.Transaction{}, err
	}
	feedback := correction.Feedback
	txn.Feedback = &feedback
	s.transactions[id-1] = txn
	limits := correction.Limits
	s.limits = &limits
	return copyTransaction(txn), nil
}

func (s *Store) ContainsIP(_ context.Context, ip string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ips[ip]
	return ok, nil
}

func (s *Store) AddIP(_ context.Context, ip string) (models.SuspiciousIP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ips[ip]; ok {
		return models.SuspiciousIP{}, fmt.Errorf("%w: ip %s", screening.ErrDuplicate, ip)
	}
	s.nextIPID++
	entry := models.SuspiciousIP{ID: s.nextIPID, IP: ip}
	s.ips[ip] = entry
	return entry, nil
}

func (s *Store) RemoveIP(_ context.Context, ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ips[ip]; !ok {
		return fmt.Errorf("%w: ip %s", screening.ErrNotFound, ip)
	}
	delete(s.ips, ip)
	return nil
}

func (s *Store) ListIPs(_ context.Context) ([]models.SuspiciousIP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]models.SuspiciousIP, 0, len(s.ips))
	for _, e := range s.ips {
		entries = append(entries, e)
	}
	sortByID(entries, func(e models.SuspiciousIP) int64 { return e.ID })
	return entries, nil
}

func (s *Store) ContainsCard(_ context.Context, number string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cards[number]
	return ok, nil
}

func (s *Store) AddCard(_ context.Context, number string) (models.StolenCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[number]; ok {
		return models.StolenCard{}, fmt.Errorf("%w: card", screening.ErrDuplicate)
	}
	s.nextCardID++
	entry := models.StolenCard{ID: s.nextCardID, Number: number}
	s.cards[number] = entry
	return entry, nil
}

func (s *Store) RemoveCard(_ context.Context, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[number]; !ok {
		return fmt.Errorf("%w: card", screening.ErrNotFound)
	}
	delete(s.cards, number)
	return nil
}

func (s *Store) ListCards(_ context.Context) ([]models.StolenCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]models.StolenCard, 0, len(s.cards))
	for _, e := range s.cards {
		entries = append(entries, e)
	}
	sortByID(entries, func(e models.StolenCard) int64 { return e.ID })
	return entries, nil
}
