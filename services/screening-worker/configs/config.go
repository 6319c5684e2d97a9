package configs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds application configuration for screening-worker.
type Config struct {
	MetricsAddr         string        `mapstructure:"METRICS_ADDR" validate:"required"`
	KafkaBrokers        string        `mapstructure:"KAFKA_BROKERS" validate:"required"`
	KafkaCandidateTopic string        `mapstructure:"KAFKA_CANDIDATE_TOPIC" validate:"required"`
	KafkaVerdictTopic   string        `mapstructure:"KAFKA_VERDICT_TOPIC" validate:"required"`
	KafkaDLQTopic       string        `mapstructure:"KAFKA_DLQ_TOPIC" validate:"required"`
	KafkaConsumerGroup  string        `mapstructure:"KAFKA_CONSUMER_GROUP" validate:"required"`
	KafkaPartition      int           `mapstructure:"KAFKA_PARTITION" validate:"min=1"`
	KafkaReplication    int           `mapstructure:"KAFKA_REPLICATION" validate:"min=1"`
	KafkaRetention      time.Duration `mapstructure:"KAFKA_RETENTION" validate:"required"`
	MaxConcurrentJobs   int           `mapstructure:"MAX_CONCURRENT_JOBS" validate:"min=1"`
	MaxRetryCount       int           `mapstructure:"MAX_RETRY_COUNT" validate:"min=1,max=5"`
	RetryBaseBackoff    time.Duration `mapstructure:"RETRY_BASE_BACKOFF" validate:"required"`
	MaxRetryBackoff     time.Duration `mapstructure:"MAX_RETRY_BACKOFF" validate:"required"`
	PrimaryDbAddr       string        `mapstructure:"PRIMARY_DB_ADDR" validate:"required"`
	ReadDbAddr          string        `mapstructure:"READ_DB_ADDR"`
	MaxDbCons           int32         `mapstructure:"MAX_DB_CONNECTIONS" validate:"min=1"`
	MinDbCons           int32         `mapstructure:"MIN_DB_CONNECTIONS" validate:"min=1"`
	DbRetryAttempts     int           `mapstructure:"DB_RETRY_ATTEMPTS" validate:"min=1"`
	RedisAddr           string        `mapstructure:"REDIS_ADDR"`
	RedisPassword       string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB             int           `mapstructure:"REDIS_DB" validate:"min=0"`
	BlacklistCacheTTL   time.Duration `mapstructure:"BLACKLIST_CACHE_TTL" validate:"min=0"`
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("app")
	viper.AutomaticEnv()

	viper.SetDefault("METRICS_ADDR", ":9102")
	viper.SetDefault("KAFKA_CANDIDATE_TOPIC", "antifraud.candidates")
	viper.SetDefault("KAFKA_VERDICT_TOPIC", "antifraud.verdicts")
	viper.SetDefault("KAFKA_DLQ_TOPIC", "antifraud.candidates.dlq")
	viper.SetDefault("KAFKA_CONSUMER_GROUP", "screening-worker")
	viper.SetDefault("KAFKA_PARTITION", "4")
	viper.SetDefault("KAFKA_REPLICATION", "1")
	viper.SetDefault("KAFKA_RETENTION", "168h")
	viper.SetDefault("MAX_CONCURRENT_JOBS", "16")
	viper.SetDefault("MAX_RETRY_COUNT", "3")
	viper.SetDefault("RETRY_BASE_BACKOFF", "50ms")
	viper.SetDefault("MAX_RETRY_BACKOFF", "2s")
	viper.SetDefault("MAX_DB_CONNECTIONS", "10")
	viper.SetDefault("MIN_DB_CONNECTIONS", "2")
	viper.SetDefault("DB_RETRY_ATTEMPTS", "3")
	viper.SetDefault("REDIS_DB", "0")
	viper.SetDefault("BLACKLIST_CACHE_TTL", "30s")

	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running_in_test_mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running_in_development_mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./services/screening-worker/configs")
	_ = viper.ReadInConfig() // optional

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, utils.FormatConfigErrors(logger, err, cfg)
	}
	return &cfg, nil
}
