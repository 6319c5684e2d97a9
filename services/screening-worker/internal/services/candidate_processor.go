package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/go-playground/validator/v10"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/messages"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/utils"
	"github.com/nimeshabuddhika/resilient-antifraud/services/screening-worker/internal/observability"
	"go.uber.org/zap"
)

const (
	ReasonDecode   = "decode_error"
	ReasonInvalid  = "validation_error"
	ReasonEvaluate = "evaluation_error"
	ReasonPublish  = "publish_error"
)

// Screener evaluates and records one candidate. *screening.Engine implements it.
type Screener interface {
	Evaluate(ctx context.Context, c screening.Candidate, actor string) (screening.Evaluation, error)
}

// Publisher is the subset of *kafka.Producer used for verdicts and dead letters.
type Publisher interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
}

// CandidateProcessorConfig holds dependencies for the CandidateProcessor.
type CandidateProcessorConfig struct {
	Logger       *zap.Logger
	Screener     Screener
	Publisher    Publisher
	VerdictTopic string
	DLQTopic     string
	MaxRetries   int
	RetryBase    time.Duration
	RetryMax     time.Duration
}

// CandidateProcessor turns one candidate message into either a verdict message or a dead letter.
// Internal failures are retried with backoff; rejections go straight to the DLQ.
type CandidateProcessor struct {
	cfg      CandidateProcessorConfig
	validate *validator.Validate
}

func NewCandidateProcessor(cfg CandidateProcessorConfig) *CandidateProcessor {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return &CandidateProcessor{cfg: cfg, validate: validator.New()}
}

// Process handles msg end to end and reports whether its offset may be acknowledged.
// It returns false only when ctx ends before the candidate was screened.
func (p *CandidateProcessor) Process(ctx context.Context, msg *kafka.Message) bool {
	if ctx.Err() != nil {
		return false
	}
	start := time.Now()
	topic := topicOf(msg)
	traceID := pkg.TraceIDFrom(ctx)
	defer func() {
		observability.ProcessLatency.WithLabelValues(topic).Observe(time.Since(start).Seconds())
	}()

	var candidate messages.Candidate
	if err := json.Unmarshal(msg.Value, &candidate); err != nil {
		p.cfg.Logger.Error("candidate_decode_failed", zap.String(pkg.TraceId, traceID), zap.Error(err))
		p.sendToDLQ(ctx, msg, ReasonDecode, err, 0)
		return true
	}
	if err := p.validate.Struct(&candidate); err != nil {
		p.cfg.Logger.Error("candidate_validation_failed", zap.String(pkg.TraceId, traceID), zap.String(pkg.RequestId, candidate.RequestID), zap.Error(err))
		p.sendToDLQ(ctx, msg, ReasonInvalid, err, 0)
		return true
	}

	attempts := 0
	var eval screening.Evaluation
	err := utils.RetryWithBackoff(ctx, p.cfg.MaxRetries, p.cfg.RetryBase, p.cfg.RetryMax, isRetryable, func() error {
		attempts++
		if attempts > 1 {
			observability.ScreeningRetries.Inc()
		}
		var err error
		eval, err = p.cfg.Screener.Evaluate(ctx, screening.Candidate{
			Amount: candidate.Amount,
			IP:     candidate.IP,
			Number: candidate.Number,
			Region: models.Region(candidate.Region),
			Date:   candidate.Date,
		}, candidate.Username)
		return err
	})
	if err != nil && ctx.Err() != nil {
		p.cfg.Logger.Warn("candidate_screening_interrupted", zap.String(pkg.TraceId, traceID), zap.Int("attempts", attempts))
		return false
	}
	if err != nil {
		p.cfg.Logger.Error("candidate_screening_failed",
			zap.String(pkg.TraceId, traceID),
			zap.String(pkg.RequestId, candidate.RequestID),
			zap.Int("attempts", attempts),
			zap.Error(err))
		p.sendToDLQ(ctx, msg, failureReason(err), err, attempts)
		return true
	}

	observability.CandidatesScreened.WithLabelValues(string(eval.Result)).Inc()
	if err := p.publishVerdict(ctx, candidate.RequestID, eval); err != nil {
		// the transaction is already recorded; replaying the candidate would record it twice
		p.cfg.Logger.Error("verdict_publish_failed",
			zap.String(pkg.TraceId, traceID),
			zap.Int64(pkg.TransactionId, eval.TransactionID),
			zap.Error(err))
		p.sendToDLQ(ctx, msg, ReasonPublish, err, attempts)
		return true
	}
	p.cfg.Logger.Info("candidate_screened",
		zap.String(pkg.TraceId, traceID),
		zap.String(pkg.RequestId, candidate.RequestID),
		zap.Int64(pkg.TransactionId, eval.TransactionID),
		zap.String("result", string(eval.Result)))
	return true
}

func (p *CandidateProcessor) publishVerdict(ctx context.Context, requestID string, eval screening.Evaluation) error {
	b, err := json.Marshal(messages.Verdict{
		RequestID:     requestID,
		TransactionID: eval.TransactionID,
		Result:        string(eval.Result),
		Info:          eval.Info(),
		EvaluatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return p.cfg.Publisher.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.cfg.VerdictTopic, Partition: kafka.PartitionAny},
		Key:            []byte(requestID),
		Value:          b,
		Headers:        traceHeaders(ctx),
	}, nil)
}

// sendToDLQ sends the original payload to the Dead Letter Queue with context.
func (p *CandidateProcessor) sendToDLQ(ctx context.Context, msg *kafka.Message, reason string, cause error, attempts int) {
	traceID := pkg.TraceIDFrom(ctx)
	payload := json.RawMessage(msg.Value)
	if !json.Valid(msg.Value) {
		payload, _ = json.Marshal(string(msg.Value))
	}
	b, err := json.Marshal(messages.DeadLetter{
		Payload:       payload,
		FailureReason: reason,
		Error:         cause.Error(),
		Attempts:      attempts,
		FailedAt:      time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		p.cfg.Logger.Error("dlq_marshal_failed", zap.String(pkg.TraceId, traceID), zap.Error(err))
		return
	}

	err = p.cfg.Publisher.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.cfg.DLQTopic, Partition: kafka.PartitionAny},
		Key:            msg.Key,
		Value:          b,
		Headers:        traceHeaders(ctx),
	}, nil)
	if err != nil {
		p.cfg.Logger.Error("dlq_publish_failed", zap.String(pkg.TraceId, traceID), zap.String("reason", reason), zap.Error(err))
		return
	}
	observability.DLQPublished.WithLabelValues(reason).Inc()
	p.cfg.Logger.Warn("sent_to_candidate_dlq", zap.String(pkg.TraceId, traceID), zap.String("reason", reason))
}

func isRetryable(err error) bool {
	var appErr pkg.AppError
	if !errors.As(err, &appErr) {
		return true
	}
	return appErr.Code.Status >= 500
}

// failureReason labels a screening error by its application code.
func failureReason(err error) string {
	var appErr pkg.AppError
	if errors.As(err, &appErr) {
		return appErr.Code.Code
	}
	return ReasonEvaluate
}

func traceHeaders(ctx context.Context) []kafka.Header {
	traceID := pkg.TraceIDFrom(ctx)
	if traceID == "" {
		return nil
	}
	return []kafka.Header{{Key: pkg.HeaderTraceId, Value: []byte(traceID)}}
}

func topicOf(msg *kafka.Message) string {
	if msg.TopicPartition.Topic == nil {
		return ""
	}
	return *msg.TopicPartition.Topic
}
