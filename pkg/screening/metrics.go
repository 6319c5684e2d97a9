package screening

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "antifraud",
			Name:      "verdicts_total",
			Help:      "Evaluated transactions by verdict",
		},
		[]string{"result"},
	)

	reasonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "antifraud",
			Name:      "reasons_total",
			Help:      "Reasons contributing to non-ALLOWED verdicts",
		},
		[]string{"reason"},
	)

	feedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "antifraud",
			Name:      "feedback_total",
			Help:      "Accepted feedback by original result and correction",
		},
		[]string{"result", "feedback"},
	)
)
