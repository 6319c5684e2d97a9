package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/cache"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/database"
	kafkautils "github.com/nimeshabuddhika/resilient-antifraud/pkg/kafka"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/stores/postgres"
	"github.com/nimeshabuddhika/resilient-antifraud/services/screening-worker/configs"
	"github.com/nimeshabuddhika/resilient-antifraud/services/screening-worker/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// main initializes and runs the screening worker service.
func main() {
	pkg.InitLogger("screening-worker")
	logger := pkg.Logger
	defer logger.Sync()

	cfg, err := configs.Load(logger)
	if err != nil {
		logger.Fatal("failed_to_load_config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, disconnect, err := database.New(ctx, logger, database.Config{
		PrimaryDSN: cfg.PrimaryDbAddr,
		ReadDSNs:   []string{cfg.ReadDbAddr},
		MaxConns:   cfg.MaxDbCons,
		MinConns:   cfg.MinDbCons,
	})
	if err != nil {
		logger.Fatal("failed_to_init_db", zap.Error(err))
	}
	defer disconnect()
	if err = database.RunMigrations(logger, cfg.PrimaryDbAddr); err != nil {
		logger.Fatal("failed_to_run_migrations", zap.Error(err))
	}

	store := postgres.NewStore(db, logger, postgres.Config{RetryAttempts: cfg.DbRetryAttempts})
	var blacklist screening.BlacklistStore = store
	if cfg.RedisAddr != "" {
		redisClient, closeRedis, err := cache.NewClient(ctx, logger, cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Fatal("failed_to_init_redis", zap.Error(err))
		}
		defer closeRedis()
		blacklist = cache.NewBlacklist(store, redisClient, cfg.BlacklistCacheTTL, logger)
	}

	engine := screening.NewEngine(screening.EngineConfig{
		Logger:   logger,
		Limits:   store,
		Ledger:   store,
		Feedback: store,
		IPs:      blacklist,
		Cards:    blacklist,
		Users:    store,
	})

	retention := fmt.Sprintf("%d", cfg.KafkaRetention.Milliseconds())
	topics := []kafkautils.TopicConfig{
		{Topic: cfg.KafkaCandidateTopic, NumPartitions: cfg.KafkaPartition, ReplicationFactor: cfg.KafkaReplication, Config: map[string]string{"retention.ms": retention}},
		{Topic: cfg.KafkaVerdictTopic, NumPartitions: cfg.KafkaPartition, ReplicationFactor: cfg.KafkaReplication, Config: map[string]string{"retention.ms": retention}},
		{Topic: cfg.KafkaDLQTopic, NumPartitions: 1, ReplicationFactor: cfg.KafkaReplication, Config: map[string]string{"retention.ms": retention}},
	}
	if err = kafkautils.InitKafkaTopics(logger, ctx, kafkautils.KafkaConfig{BootstrapServers: cfg.KafkaBrokers, Topics: topics}); err != nil {
		logger.Fatal("failed_to_init_kafka_topics", zap.Error(err))
	}

	producer, err := kafka.NewProducer(kafkautils.ProducerConfig(cfg.KafkaBrokers))
	if err != nil {
		logger.Fatal("failed_to_create_kafka_producer", zap.Error(err))
	}
	go kafkautils.LogDeliveryReports(logger, producer.Events())

	consumer, err := kafka.NewConsumer(kafkautils.ConsumerConfig(cfg.KafkaBrokers, cfg.KafkaConsumerGroup))
	if err != nil {
		logger.Fatal("failed_to_create_kafka_consumer", zap.Error(err))
	}

	candidates := services.NewKafkaCandidateConsumer(services.KafkaCandidateConfig{
		Logger: logger,
		Source: consumer,
		Processor: services.NewCandidateProcessor(services.CandidateProcessorConfig{
			Logger:       logger,
			Screener:     engine,
			Publisher:    producer,
			VerdictTopic: cfg.KafkaVerdictTopic,
			DLQTopic:     cfg.KafkaDLQTopic,
			MaxRetries:   cfg.MaxRetryCount,
			RetryBase:    cfg.RetryBaseBackoff,
			RetryMax:     cfg.MaxRetryBackoff,
		}),
		Topic:             cfg.KafkaCandidateTopic,
		MaxConcurrentJobs: cfg.MaxConcurrentJobs,
	})

	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics_server_error", zap.Error(err))
		}
	}()

	logger.Info("screening_worker_started", zap.String("topic", cfg.KafkaCandidateTopic), zap.String("group", cfg.KafkaConsumerGroup))
	if err = candidates.Run(ctx); err != nil {
		logger.Error("candidate_consumer_failed", zap.Error(err))
	}

	logger.Info("shutting_down")
	candidates.Close()
	producer.Flush(5000)
	producer.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsSrv.Shutdown(shutdownCtx)
	logger.Info("service_shutdown_completed")
}
