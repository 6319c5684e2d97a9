package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	kafkautils "github.com/nimeshabuddhika/resilient-antifraud/pkg/kafka"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/messages"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/configs"
	"go.uber.org/zap"
)

// Producer is the subset of *kafka.Producer the publisher needs.
type Producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
}

// CandidatePublisher queues transactions for asynchronous screening by the worker.
type CandidatePublisher interface {
	Publish(ctx context.Context, c messages.Candidate) error
}

type KafkaCandidatePublisher struct {
	logger   *zap.Logger
	producer Producer
	topic    string
}

func NewCandidatePublisher(logger *zap.Logger, producer Producer, topic string) *KafkaCandidatePublisher {
	return &KafkaCandidatePublisher{logger: logger, producer: producer, topic: topic}
}

// NewKafkaCandidatePublisher creates the candidate topic if needed and connects a producer.
// The returned func flushes and closes the producer.
func NewKafkaCandidatePublisher(ctx context.Context, logger *zap.Logger, cnf *configs.Config) (*KafkaCandidatePublisher, func(), error) {
	topicConfig := kafkautils.KafkaConfig{
		BootstrapServers: cnf.KafkaBrokers,
		Topics: []kafkautils.TopicConfig{
			{
				Topic:             cnf.KafkaCandidateTopic,
				NumPartitions:     cnf.KafkaPartition,
				ReplicationFactor: 1,
				Config: map[string]string{
					"cleanup.policy": "delete",
					"retention.ms":   fmt.Sprintf("%d", cnf.KafkaRetention.Milliseconds()),
				},
			},
		},
	}
	if err := kafkautils.InitKafkaTopics(logger, ctx, topicConfig); err != nil {
		return nil, nil, err
	}

	p, err := kafka.NewProducer(kafkautils.ProducerConfig(cnf.KafkaBrokers))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("kafka_producer_created", zap.String("brokers", cnf.KafkaBrokers))
	go kafkautils.LogDeliveryReports(logger, p.Events())

	closer := func() {
		p.Flush(5000)
		p.Close()
		logger.Info("kafka_producer_closed")
	}
	return NewCandidatePublisher(logger, p, cnf.KafkaCandidateTopic), closer, nil
}

// Publish produces c asynchronously. Keying by card number keeps one card's candidates on one
// partition, so the worker sees them in submission order.
func (k *KafkaCandidatePublisher) Publish(ctx context.Context, c messages.Candidate) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	var headers []kafka.Header
	if traceID := pkg.TraceIDFrom(ctx); traceID != "" {
		headers = []kafka.Header{{Key: pkg.HeaderTraceId, Value: []byte(traceID)}}
	}
	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
		Key:            []byte(c.Number),
		Value:          b,
		Headers:        headers,
	}, nil)
	if err != nil {
		return pkg.NewAppError(pkg.ErrServerCode, "failed to queue transaction", err)
	}
	k.logger.Info("candidate_queued", zap.String(pkg.TraceId, pkg.TraceIDFrom(ctx)), zap.String(pkg.RequestId, c.RequestID))
	return nil
}
