package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ipKeyPrefix   = "antifraud:blacklist:ip:"
	cardKeyPrefix = "antifraud:blacklist:card:"

	listed   = "1"
	unlisted = "0"
)

var _ screening.BlacklistStore = (*Blacklist)(nil)

// Blacklist caches membership answers of the wrapped store in Redis.
// Writes go to the store first and then overwrite the cached answer; read-through fills only
// populate a missing key, so a fill loaded before a write can never replace the write's answer.
// Redis failures fall back to the store.
type Blacklist struct {
	store  screening.BlacklistStore
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewBlacklist(store screening.BlacklistStore, client *redis.Client, ttl time.Duration, logger *zap.Logger) *Blacklist {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Blacklist{store: store, client: client, ttl: ttl, logger: logger}
}

// cardKey never stores the raw card number.
func cardKey(number string) string {
	sum := sha256.Sum256([]byte(number))
	return cardKeyPrefix + hex.EncodeToString(sum[:])
}

func (b *Blacklist) contains(ctx context.Context, key string, load func(context.Context) (bool, error)) (bool, error) {
	val, err := b.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return val == listed, nil
	case !errors.Is(err, redis.Nil):
		b.logger.Warn("blacklist_cache_read_failed", zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)), zap.Error(err))
	}

	found, err := load(ctx)
	if err != nil {
		return false, err
	}
	val = unlisted
	if found {
		val = listed
	}
	if err = b.client.SetNX(ctx, key, val, b.ttl).Err(); err != nil {
		b.logger.Warn("blacklist_cache_write_failed", zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)), zap.Error(err))
	}
	return found, nil
}

// remember records the answer of a committed write, evicting the key if that fails.
func (b *Blacklist) remember(ctx context.Context, key string, found bool) {
	val := unlisted
	if found {
		val = listed
	}
	err := b.client.Set(ctx, key, val, b.ttl).Err()
	if err == nil {
		return
	}
	b.logger.Warn("blacklist_cache_update_failed", zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)), zap.Error(err))
	if err = b.client.Del(ctx, key).Err(); err != nil {
		b.logger.Error("blacklist_cache_evict_failed", zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)), zap.Error(err))
	}
}

func (b *Blacklist) ContainsIP(ctx context.Context, ip string) (bool, error) {
	return b.contains(ctx, ipKeyPrefix+ip, func(ctx context.Context) (bool, error) {
		return b.store.ContainsIP(ctx, ip)
	})
}

func (b *Blacklist) ContainsCard(ctx context.Context, number string) (bool, error) {
	return b.contains(ctx, cardKey(number), func(ctx context.Context) (bool, error) {
		return b.store.ContainsCard(ctx, number)
	})
}

func (b *Blacklist) AddIP(ctx context.Context, ip string) (models.SuspiciousIP, error) {
	entry, err := b.store.AddIP(ctx, ip)
	if err == nil {
		b.remember(ctx, ipKeyPrefix+ip, true)
	}
	return entry, err
}

func (b *Blacklist) RemoveIP(ctx context.Context, ip string) error {
	err := b.store.RemoveIP(ctx, ip)
	if err == nil {
		b.remember(ctx, ipKeyPrefix+ip, false)
	}
	return err
}

func (b *Blacklist) ListIPs(ctx context.Context) ([]models.SuspiciousIP, error) {
	return b.store.ListIPs(ctx)
}

func (b *Blacklist) AddCard(ctx context.Context, number string) (models.StolenCard, error) {
	entry, err := b.store.AddCard(ctx, number)
	if err == nil {
		b.remember(ctx, cardKey(number), true)
	}
	return entry, err
}

func (b *Blacklist) RemoveCard(ctx context.Context, number string) error {
	err := b.store.RemoveCard(ctx, number)
	if err == nil {
		b.remember(ctx, cardKey(number), false)
	}
	return err
}

func (b *Blacklist) ListCards(ctx context.Context) ([]models.StolenCard, error) {
	return b.store.ListCards(ctx)
}
