package configs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Port                string        `mapstructure:"PORT" validate:"required"`
	StoreDriver         string        `mapstructure:"STORE_DRIVER" validate:"oneof=postgres memory"`
	PrimaryDbAddr       string        `mapstructure:"PRIMARY_DB_ADDR" validate:"required_if=StoreDriver postgres"`
	ReadDbAddr          string        `mapstructure:"READ_DB_ADDR"`
	MaxDbCons           int32         `mapstructure:"MAX_DB_CONNECTIONS" validate:"min=1"`
	MinDbCons           int32         `mapstructure:"MIN_DB_CONNECTIONS" validate:"min=1"`
	DbRetryAttempts     int           `mapstructure:"DB_RETRY_ATTEMPTS" validate:"min=1"`
	RedisAddr           string        `mapstructure:"REDIS_ADDR"`
	RedisPassword       string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB             int           `mapstructure:"REDIS_DB" validate:"min=0"`
	RedisTLS            bool          `mapstructure:"REDIS_TLS"`
	BlacklistCacheTTL   time.Duration `mapstructure:"BLACKLIST_CACHE_TTL" validate:"min=0"`
	RateLimitPerSec     int           `mapstructure:"RATE_LIMIT_PER_SEC" validate:"min=0"`
	RateLimitBurst      int           `mapstructure:"RATE_LIMIT_BURST" validate:"min=0"`
	KafkaBrokers        string        `mapstructure:"KAFKA_BROKERS"`
	KafkaCandidateTopic string        `mapstructure:"KAFKA_CANDIDATE_TOPIC" validate:"required_with=KafkaBrokers"`
	KafkaPartition      int           `mapstructure:"KAFKA_PARTITION" validate:"min=1"`
	KafkaRetention      time.Duration `mapstructure:"KAFKA_RETENTION" validate:"min=0"`
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("app")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("MAX_DB_CONNECTIONS", "10")
	viper.SetDefault("MIN_DB_CONNECTIONS", "2")
	viper.SetDefault("DB_RETRY_ATTEMPTS", "3")
	viper.SetDefault("REDIS_DB", "0")
	viper.SetDefault("BLACKLIST_CACHE_TTL", "30s")
	viper.SetDefault("RATE_LIMIT_PER_SEC", "0")
	viper.SetDefault("RATE_LIMIT_BURST", "0")
	viper.SetDefault("KAFKA_CANDIDATE_TOPIC", "antifraud.candidates")
	viper.SetDefault("KAFKA_PARTITION", "4")
	viper.SetDefault("KAFKA_RETENTION", "168h")

	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running in test mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running in development mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./services/antifraud-api/configs")
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
