package kafkautils

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

type KafkaConfig struct {
	BootstrapServers string
	Topics           []TopicConfig
}

// TopicConfig describes one topic to create.
type TopicConfig struct {
	Topic             string
	NumPartitions     int
	ReplicationFactor int
	Config            map[string]string
}

// InitKafkaTopics creates the candidate, verdict and DLQ topics, retrying for up to two minutes
// while the brokers come up. Existing topics are left as they are.
func InitKafkaTopics(logger *zap.Logger, ctx context.Context, cnf KafkaConfig) error {
	config := &kafka.ConfigMap{"bootstrap.servers": cnf.BootstrapServers}
	admin, err := kafka.NewAdminClient(config)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	var topics []kafka.TopicSpecification
	for _, topic := range cnf.Topics {
		t := kafka.TopicSpecification{
			Topic:             topic.Topic,
			NumPartitions:     topic.NumPartitions,
			ReplicationFactor: topic.ReplicationFactor,
			Config:            topic.Config,
		}
		topics = append(topics, t)
	}

	operation := func() error {
		results, err := admin.CreateTopics(ctx, topics, kafka.SetAdminOperationTimeout(30*time.Second))
		if err != nil {
			return fmt.Errorf("failed to create topics: %w", err)
		}
		for _, result := range results {
			if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
				return fmt.Errorf("kafka topic %s creation failed: %v", result.Topic, result.Error)
			}
			logger.Info("kafka_topic_ready", zap.String("topic", result.Topic))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 2 * time.Minute
	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}

// ProducerConfig returns the config shared by the verdict and DLQ producers.
func ProducerConfig(bootstrapServers string) *kafka.ConfigMap {
	return &kafka.ConfigMap{
		"bootstrap.servers":  bootstrapServers,
		"acks":               "all",
		"enable.idempotence": true,
		"linger.ms":          5,
	}
}

// ConsumerConfig returns a consumer config with manual offset commits.
func ConsumerConfig(bootstrapServers, groupID string) *kafka.ConfigMap {
	return &kafka.ConfigMap{
		"bootstrap.servers":  bootstrapServers,
		"group.id":           groupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	}
}

// LogDeliveryReports drains a producer's event channel, logging failed deliveries, until it is closed.
func LogDeliveryReports(logger *zap.Logger, events <-chan kafka.Event) {
	for e := range events {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				topic := ""
				if ev.TopicPartition.Topic != nil {
					topic = *ev.TopicPartition.Topic
				}
				logger.Error("kafka_delivery_failed", zap.String("topic", topic), zap.Error(ev.TopicPartition.Error))
			}
		case kafka.Error:
			logger.Error("kafka_producer_error", zap.Error(ev))
		}
	}
}
