package pkg

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Errors
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// maxLocalSubjects bounds the per-subject local buckets; the least recently seen are dropped first.
const maxLocalSubjects = 10000

// DistributedLimiter combines a per-subject local rate.Limiter with a Redis fixed-window counter
// so that all API replicas share one budget per subject (e.g. per username).
type DistributedLimiter struct {
	mu          sync.Mutex // guards get-or-create on locals
	locals      *lru.Cache[string, *rate.Limiter]
	limit       rate.Limit
	burst       int
	redisClient *redis.Client
	prefix      string        // e.g: "antifraud:rate"
	perWindow   int64         // max requests per subject per window across replicas
	window      time.Duration // counter expiry
	logger      *zap.Logger
}

// NewDistributedLimiter creates a limiter; if perSecond=0, it's unlimited.
// A nil redisClient degrades to local-only limiting.
func NewDistributedLimiter(redisClient *redis.Client, prefix string, perSecond, burst int, logger *zap.Logger) *DistributedLimiter {
	var locals *lru.Cache[string, *rate.Limiter]
	if perSecond > 0 {
		locals, _ = lru.New[string, *rate.Limiter](maxLocalSubjects) // size is positive
	}
	return &DistributedLimiter{
		locals:      locals,
		limit:       rate.Limit(perSecond),
		burst:       burst,
		redisClient: redisClient,
		prefix:      prefix,
		perWindow:   int64(perSecond + burst),
		window:      time.Second,
		logger:      logger,
	}
}

// localFor returns subject's local bucket, creating it on first use.
func (d *DistributedLimiter) localFor(subject string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	if l, ok := d.locals.Get(subject); ok {
		return l
	}
	l := rate.NewLimiter(d.limit, d.burst)
	d.locals.Add(subject, l)
	return l
}

// Allow checks if a token is available for subject; uses Redis for the distributed increment.
func (d *DistributedLimiter) Allow(ctx context.Context, subject string) bool {
	if d.locals == nil {
		return true // Unlimited
	}

	// Local check first (fast path)
	if !d.localFor(subject).Allow() {
		return false
	}
	if d.redisClient == nil {
		return true
	}

	key := fmt.Sprintf("%s:%s:%d", d.prefix, subject, time.Now().Unix())
	pipe := d.redisClient.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*d.window)
	if _, err := pipe.Exec(ctx); err != nil {
		d.logger.Error("redis_rate_limit_error_falling_back_to_local", zap.Error(err))
		return true
	}

	if count := incr.Val(); count > d.perWindow {
		d.logger.Warn("global_rate_limit_exceeded", zap.String("subject", subject), zap.Int64("count", count))
		return false
	}
	return true
}
