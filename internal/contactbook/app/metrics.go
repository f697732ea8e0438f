package app

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

const (
	outcomeSuccess         = "success"
	outcomeNoMatch         = "no_match"
	outcomeNotFound        = "not_found"
	outcomeConnectionError = "connection_error"
	outcomeExecutionError  = "execution_error"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contactbook",
			Name:      "store_operations_total",
			Help:      "Total repository operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	storeOperationDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contactbook",
			Name:      "store_operation_duration_seconds",
			Help:      "Duration of repository operations, connection setup included.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, domain.ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, domain.ErrConnection):
		return outcomeConnectionError
	default:
		return outcomeExecutionError
	}
}

func observe(operation string, start time.Time, outcome string) {
	storeOperationDurationHist.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	storeOperationsTotal.WithLabelValues(operation, outcome).Inc()
}
