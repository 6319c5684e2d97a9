package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "screening_worker",
			Name:      "messages_received_total",
			Help:      "Kafka messages pulled by the worker",
		},
		[]string{"topic"},
	)

	CandidatesScreened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "screening_worker",
			Name:      "screened_total",
			Help:      "Candidates screened and recorded, by verdict",
		},
		[]string{"result"},
	)

	ScreeningRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "screening_worker",
			Name:      "retries_total",
			Help:      "Evaluation attempts repeated after an internal failure",
		},
	)

	DLQPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "screening_worker",
			Name:      "dlq_total",
			Help:      "Candidates sent to DLQ by reason",
		},
		[]string{"reason"},
	)

	ProcessLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "screening_worker",
			Name:      "process_duration_seconds",
			Help:      "End-to-end processing latency per message",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"topic"},
	)

	InflightJobs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "screening_worker",
			Name:      "inflight_jobs",
			Help:      "Number of jobs currently being processed (semaphore depth)",
		},
	)
)
