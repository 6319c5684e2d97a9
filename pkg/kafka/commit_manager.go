package kafkautils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"go.uber.org/zap"
)

// OffsetCommitter is the subset of *kafka.Consumer the CommitManager needs.
type OffsetCommitter interface {
	CommitOffsets(offsets []kafka.TopicPartition) ([]kafka.TopicPartition, error)
}

type tp struct {
	topic     string
	partition int32
}

// CommitManager commits offsets only once every earlier offset of the partition is acknowledged,
// so messages processed out of order by concurrent jobs are never skipped on restart.
type CommitManager struct {
	mu        sync.Mutex
	high      map[tp]int64              // last committed offset per partition
	done      map[tp]map[int64]struct{} // processed offsets not yet committed
	committer OffsetCommitter
	log       *zap.Logger
}

func NewCommitManager(c OffsetCommitter, l *zap.Logger) *CommitManager {
	return &CommitManager{
		high:      make(map[tp]int64),
		done:      make(map[tp]map[int64]struct{}),
		committer: c,
		log:       l,
	}
}

// Seed records the offset preceding the first message consumed from a partition.
func (m *CommitManager) Seed(topic string, partition int32, offset int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := tp{topic: topic, partition: partition}
	if _, ok := m.high[key]; !ok {
		m.high[key] = offset - 1
	}
}

// Ack marks msg as processed and commits the longest contiguous run of acknowledged offsets.
func (m *CommitManager) Ack(traceID string, msg *kafka.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := tp{topic: *msg.TopicPartition.Topic, partition: msg.TopicPartition.Partition}
	off := int64(msg.TopicPartition.Offset)

	if _, ok := m.high[key]; !ok {
		m.high[key] = off - 1
	}
	if m.done[key] == nil {
		m.done[key] = map[int64]struct{}{}
	}
	m.done[key][off] = struct{}{}

	next := m.high[key]
	for {
		if _, ok := m.done[key][next+1]; !ok {
			break
		}
		next++
		delete(m.done[key], next)
	}
	if next == m.high[key] {
		return
	}

	toCommit := kafka.TopicPartition{Topic: &key.topic, Partition: key.partition, Offset: kafka.Offset(next + 1)}
	if _, err := m.committer.CommitOffsets([]kafka.TopicPartition{toCommit}); err != nil {
		m.log.Error("offset_commit_failed",
			zap.String(pkg.TraceId, traceID),
			zap.String("topic", key.topic),
			zap.Int32("partition", key.partition),
			zap.Int64("attempted_offset", next), zap.Error(err))
		// keep the acknowledged offsets so the next Ack retries the commit
		for o := m.high[key] + 1; o <= next; o++ {
			m.done[key][o] = struct{}{}
		}
		return
	}
	m.high[key] = next
	m.log.Debug("offset_committed",
		zap.String(pkg.TraceId, traceID),
		zap.String("topic", key.topic),
		zap.Int32("partition", key.partition),
		zap.Int64("offset", next))
}
