package services

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/google/uuid"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	kafkautils "github.com/nimeshabuddhika/resilient-antifraud/pkg/kafka"
	"github.com/nimeshabuddhika/resilient-antifraud/services/screening-worker/internal/observability"
	"go.uber.org/zap"
)

// MessageSource is the subset of *kafka.Consumer the candidate consumer reads from.
type MessageSource interface {
	kafkautils.OffsetCommitter
	SubscribeTopics(topics []string, rebalanceCb kafka.RebalanceCb) error
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	Close() error
}

// KafkaCandidateConfig holds dependencies for the candidate consumer.
type KafkaCandidateConfig struct {
	Logger            *zap.Logger
	Source            MessageSource
	Processor         *CandidateProcessor
	Topic             string
	MaxConcurrentJobs int
	PollTimeout       time.Duration
}

// laneBacklog bounds how many messages may wait on one lane before the poll loop blocks.
const laneBacklog = 16

// KafkaCandidateConsumer screens candidates on MaxConcurrentJobs lanes. Messages sharing a key
// (the card number) always land on the same lane, so one card's candidates are screened in
// offset order while different cards proceed concurrently.
// Offsets are committed through a CommitManager so that out-of-order completion never skips a message.
type KafkaCandidateConsumer struct {
	cfg     KafkaCandidateConfig
	commits *kafkautils.CommitManager
	lanes   []chan *kafka.Message
	wg      sync.WaitGroup
}

func NewKafkaCandidateConsumer(cfg KafkaCandidateConfig) *KafkaCandidateConsumer {
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 200 * time.Millisecond
	}
	if cfg.MaxConcurrentJobs < 1 {
		cfg.MaxConcurrentJobs = 1
	}
	return &KafkaCandidateConsumer{
		cfg:     cfg,
		commits: kafkautils.NewCommitManager(cfg.Source, cfg.Logger),
	}
}

// Run subscribes and consumes until ctx is done, then waits for in-flight jobs.
func (k *KafkaCandidateConsumer) Run(ctx context.Context) error {
	if err := k.cfg.Source.SubscribeTopics([]string{k.cfg.Topic}, nil); err != nil {
		return err
	}
	k.cfg.Logger.Info("listening_to_kafka_topic", zap.String("topic", k.cfg.Topic), zap.Int("lanes", k.cfg.MaxConcurrentJobs))

	k.startLanes(ctx)
	defer k.stopLanes()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msg, err := k.cfg.Source.ReadMessage(k.cfg.PollTimeout)
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) && kerr.IsTimeout() {
				continue
			}
			k.cfg.Logger.Error("kafka_read_failed", zap.Error(err))
			continue
		}
		observability.MessagesReceived.WithLabelValues(k.cfg.Topic).Inc()
		k.commits.Seed(topicOf(msg), msg.TopicPartition.Partition, int64(msg.TopicPartition.Offset))

		// blocks while the lane's backlog is full
		select {
		case k.lanes[laneOf(msg, len(k.lanes))] <- msg:
			observability.InflightJobs.Inc()
		case <-ctx.Done():
			return nil
		}
	}
}

func (k *KafkaCandidateConsumer) startLanes(ctx context.Context) {
	k.lanes = make([]chan *kafka.Message, k.cfg.MaxConcurrentJobs)
	for i := range k.lanes {
		lane := make(chan *kafka.Message, laneBacklog)
		k.lanes[i] = lane
		k.wg.Add(1)
		go func() {
			defer k.wg.Done()
			for m := range lane {
				traceID := traceIDOf(m)
				if k.cfg.Processor.Process(pkg.WithTraceID(ctx, traceID), m) {
					k.commits.Ack(traceID, m)
				}
				observability.InflightJobs.Dec()
			}
		}()
	}
}

// stopLanes drains the lanes and waits for their workers. Messages still queued when ctx
// ended are skipped by Process and left uncommitted.
func (k *KafkaCandidateConsumer) stopLanes() {
	for _, lane := range k.lanes {
		close(lane)
	}
	k.wg.Wait()
}

// laneOf maps the message key onto a lane, falling back to the partition for unkeyed messages.
func laneOf(msg *kafka.Message, lanes int) int {
	if len(msg.Key) == 0 {
		p := int(msg.TopicPartition.Partition)
		if p < 0 {
			p = -p
		}
		return p % lanes
	}
	h := fnv.New32a()
	_, _ = h.Write(msg.Key)
	return int(h.Sum32() % uint32(lanes))
}

// Close releases the underlying consumer.
func (k *KafkaCandidateConsumer) Close() {
	if err := k.cfg.Source.Close(); err != nil {
		k.cfg.Logger.Error("kafka_consumer_close_failed", zap.Error(err))
		return
	}
	k.cfg.Logger.Info("kafka_consumer_closed")
}

// traceIDOf returns the producer's trace id header, or a fresh id when absent.
func traceIDOf(msg *kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == pkg.HeaderTraceId && len(h.Value) > 0 {
			return string(h.Value)
		}
	}
	return uuid.NewString()
}
