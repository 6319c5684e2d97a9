package screening

import (
	"context"
	"errors"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"go.uber.org/zap"
)

// BlacklistService validates and manages suspicious IPs and stolen cards.
type BlacklistService struct {
	logger *zap.Logger
	store  BlacklistStore
}

func NewBlacklistService(logger *zap.Logger, store BlacklistStore) *BlacklistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlacklistService{logger: logger, store: store}
}

func (s *BlacklistService) AddSuspiciousIP(ctx context.Context, ip string) (models.SuspiciousIP, error) {
	if !IsValidIPv4(ip) {
		return models.SuspiciousIP{}, pkg.NewAppError(pkg.ErrInvalidInputCode, "ip must be a dotted-quad IPv4 address", nil)
	}
	entry, err := s.store.AddIP(ctx, ip)
	if err != nil {
		return models.SuspiciousIP{}, blacklistError(err, "ip is already blacklisted", "ip not found")
	}
	s.logger.Info("suspicious_ip_added", zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)), zap.String("ip", ip))
	return entry, nil
}

func (s *BlacklistService) RemoveSuspiciousIP(ctx context.Context, ip string) error {
	if !IsValidIPv4(ip) {
		return pkg.NewAppError(pkg.ErrInvalidInputCode, "ip must be a dotted-quad IPv4 address", nil)
	}
	if err := s.store.RemoveIP(ctx, ip); err != nil {
		return blacklistError(err, "ip is already blacklisted", "ip not found")
	}
	s.logger.Info("suspicious_ip_removed", zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)), zap.String("ip", ip))
	return nil
}

func (s *BlacklistService) ListSuspiciousIPs(ctx context.Context) ([]models.SuspiciousIP, error) {
	entries, err := s.store.ListIPs(ctx)
	if err != nil {
		return nil, storageError("failed to list suspicious ips", err)
	}
	return entries, nil
}

func (s *BlacklistService) AddStolenCard(ctx context.Context, number string) (models.StolenCard, error) {
	if !IsValidCardNumber(number) {
		return models.StolenCard{}, pkg.NewAppError(pkg.ErrInvalidInputCode, "card number is invalid", nil)
	}
	entry, err := s.store.AddCard(ctx, number)
	if err != nil {
		return models.StolenCard{}, blacklistError(err, "card is already blacklisted", "card not found")
	}
	s.logger.Info("stolen_card_added", zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)))
	return entry, nil
}

func (s *BlacklistService) RemoveStolenCard(ctx context.Context, number string) error {
	if !IsValidCardNumber(number) {
		return pkg.NewAppError(pkg.ErrInvalidInputCode, "card number is invalid", nil)
	}
	if err := s.store.RemoveCard(ctx, number); err != nil {
		return blacklistError(err, "card is already blacklisted", "card not found")
	}
	s.logger.Info("stolen_card_removed", zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)))
	return nil
}

func (s *BlacklistService) ListStolenCards(ctx context.Context) ([]models.StolenCard, error) {
	entries, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, storageError("failed to list stolen cards", err)
	}
	return entries, nil
}

func blacklistError(err error, duplicateMsg, notFoundMsg string) error {
	switch {
	case errors.Is(err, ErrDuplicate):
		return pkg.NewAppError(pkg.ErrConflictCode, duplicateMsg, err)
	case errors.Is(err, ErrNotFound):
		return pkg.NewAppError(pkg.ErrRecordNotFoundCode, notFoundMsg, err)
	default:
		return storageError("blacklist store failure", err)
	}
}
