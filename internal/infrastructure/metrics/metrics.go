package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Payment metrics
	PaymentsRecorded prometheus.Counter
	PaymentDuration  prometheus.Histogram
	PaymentAmount    prometheus.Histogram
	PaymentErrors    *prometheus.CounterVec
	PaymentRetries   prometheus.Counter

	// Enrollment metrics
	EnrollmentsCreated prometheus.Counter
	EnrollmentErrors   *prometheus.CounterVec
	AccountsFullyPaid  prometheus.Counter

	// Fee schedule metrics
	FeeScheduleUpserts   prometheus.Counter
	FeeScheduleCacheHits *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationRuns       prometheus.Counter
	ReconciliationMismatches prometheus.Counter

	// Database metrics
	DBConnections  prometheus.Gauge
	WriteConflicts prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feeledger_payments_recorded_total",
			Help: "Total number of tuition payments recorded",
		}),
		PaymentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "feeledger_payment_duration_seconds",
			Help:    "Duration of payment recording operations",
			Buckets: prometheus.DefBuckets,
		}),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "feeledger_payment_amount",
			Help:    "Recorded payment amounts",
			Buckets: []float64{1000, 5000, 10000, 25000, 50000, 100000, 250000},
		}),
		PaymentErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feeledger_payment_errors_total",
				Help: "Total number of payment errors by type",
			},
			[]string{"error_type"},
		),
		PaymentRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feeledger_payment_retries_total",
			Help: "Total number of payment attempts retried after a write conflict",
		}),

		EnrollmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feeledger_enrollments_created_total",
			Help: "Total number of student enrollments",
		}),
		EnrollmentErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feeledger_enrollment_errors_total",
				Help: "Total number of enrollment errors by type",
			},
			[]string{"error_type"},
		),
		AccountsFullyPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feeledger_accounts_fully_paid_total",
			Help: "Total number of accounts that reached fully paid status",
		}),

		FeeScheduleUpserts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feeledger_fee_schedule_upserts_total",
			Help: "Total number of fee schedule upserts",
		}),
		FeeScheduleCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feeledger_fee_schedule_cache_total",
				Help: "Fee schedule cache lookups by outcome",
			},
			[]string{"outcome"},
		),

		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feeledger_reconciliation_runs_total",
			Help: "Total number of reconciliation checks",
		}),
		ReconciliationMismatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feeledger_reconciliation_mismatches_total",
			Help: "Total number of balance mismatches found by reconciliation",
		}),

		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "feeledger_db_connections",
			Help: "Current number of database connections",
		}),
		WriteConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feeledger_write_conflicts_total",
			Help: "Total number of concurrent write conflicts detected",
		}),
	}
}
