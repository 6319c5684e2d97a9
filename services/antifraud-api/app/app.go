package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/cache"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/database"
	middleware "github.com/nimeshabuddhika/resilient-antifraud/pkg/middlewares"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/stores/memory"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/stores/postgres"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/configs"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/internal/handlers"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/internal/services"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores groups the collaborators of the engine, whichever backend provides them.
type Stores struct {
	Ledger    screening.Ledger
	Limits    screening.LimitStore
	Feedback  screening.FeedbackStore
	Blacklist screening.BlacklistStore
	Users     screening.UserDirectory
}

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server and a cleanup func.
// It reads configuration from environment variables via configs.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	stores, closeStores, err := openStores(ctx, logger, cfg)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStores)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		client, closeRedis, err := cache.NewClient(ctx, logger, cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			UseTLS:   cfg.RedisTLS,
		})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, closeRedis)
		redisClient = client
		stores.Blacklist = cache.NewBlacklist(stores.Blacklist, client, cfg.BlacklistCacheTTL, logger)
	} else {
		logger.Warn("redis_disabled_blacklist_cache_and_global_rate_limit_off")
	}

	engine := screening.NewEngine(screening.EngineConfig{
		Logger:   logger,
		Limits:   stores.Limits,
		Ledger:   stores.Ledger,
		Feedback: stores.Feedback,
		IPs:      stores.Blacklist,
		Cards:    stores.Blacklist,
		Users:    stores.Users,
	})
	blacklist := screening.NewBlacklistService(logger, stores.Blacklist)
	limiter := pkg.NewDistributedLimiter(redisClient, "antifraud:rate", cfg.RateLimitPerSec, cfg.RateLimitBurst, logger)

	var publisher services.CandidatePublisher
	if cfg.KafkaBrokers != "" {
		p, closePublisher, err := services.NewKafkaCandidatePublisher(ctx, logger, cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, closePublisher)
		publisher = p
	}

	r := NewRouter(logger, engine, blacklist, limiter, publisher)
	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: r}
	return srv, cleanup, nil
}

func openStores(ctx context.Context, logger *zap.Logger, cfg *configs.Config) (Stores, func(), error) {
	if cfg.StoreDriver == configs.StoreDriverMemory {
		logger.Warn("using_in_memory_store")
		s := memory.NewStore()
		return Stores{Ledger: s, Limits: s, Feedback: s, Blacklist: s, Users: s}, func() {}, nil
	}

	db, disconnect, err := database.New(ctx, logger, database.Config{
		PrimaryDSN: cfg.PrimaryDbAddr,
		ReadDSNs:   []string{cfg.ReadDbAddr},
		MaxConns:   cfg.MaxDbCons,
		MinConns:   cfg.MinDbCons,
	})
	if err != nil {
		return Stores{}, nil, err
	}
	if err = database.RunMigrations(logger, cfg.PrimaryDbAddr); err != nil {
		disconnect()
		return Stores{}, nil, err
	}
	s := postgres.NewStore(db, logger, postgres.Config{RetryAttempts: cfg.DbRetryAttempts})
	return Stores{Ledger: s, Limits: s, Feedback: s, Blacklist: s, Users: s}, disconnect, nil
}

// NewRouter builds the HTTP surface. The actor of a screening request is read from the X-Username header.
// The queue endpoint is only mounted when publisher is non-nil.
func NewRouter(logger *zap.Logger, txns handlers.TransactionService, blacklist handlers.BlacklistService, limiter *pkg.DistributedLimiter, publisher services.CandidatePublisher) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/antifraud")
	api.Use(middleware.TraceID())
	api.Use(middleware.Metrics())
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}

	handlers.NewTransactionHandler(logger, txns).RegisterRoutes(api)
	handlers.NewBlacklistHandler(logger, blacklist).RegisterRoutes(api)
	if publisher != nil {
		handlers.NewQueueHandler(logger, publisher).RegisterRoutes(api)
	}
	handlers.NewBaseHandler(logger).RegisterRoutes(r)
	return r
}
