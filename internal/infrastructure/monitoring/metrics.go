package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type EngineMetrics struct {
	Reconciliations     *prometheus.CounterVec
	ScheduleCacheHits   prometheus.Counter
	ScheduleCacheMisses prometheus.Counter
}

type BusinessMetrics struct {
	PaymentsTotal     *prometheus.CounterVec
	OverdueMembers    prometheus.Gauge
	SweepSettledTotal prometheus.Counter
	EventsConsumed    *prometheus.CounterVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "obligation_engine_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Engine = EngineMetrics{
		Reconciliations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "obligation_engine_reconciliations_total",
				Help: "Total number of obligation reconciliations by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		ScheduleCacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "obligation_engine_schedule_cache_hits_total",
				Help: "Amortization schedules served from the in-process cache.",
			},
		),
		ScheduleCacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "obligation_engine_schedule_cache_misses_total",
				Help: "Amortization schedules built because no cached copy existed.",
			},
		),
	}

	Business = BusinessMetrics{
		PaymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "obligation_engine_payments_total",
				Help: "Total number of payment recording attempts by status.",
			},
			[]string{"status"},
		),
		OverdueMembers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "obligation_engine_overdue_members",
				Help: "Members with at least one overdue period at the last reconciliation sweep.",
			},
		),
		SweepSettledTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "obligation_engine_sweep_settled_total",
				Help: "Obligations marked settled by the reconciliation sweep.",
			},
		),
		EventsConsumed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "obligation_engine_events_consumed_total",
				Help: "Consumed broker messages by routing key and outcome.",
			},
			[]string{"routing_key", "outcome"},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordReconciliation(kind, outcome string) {
	Engine.Reconciliations.WithLabelValues(kind, outcome).Inc()
}

func RecordScheduleCache(hit bool) {
	if hit {
		Engine.ScheduleCacheHits.Inc()
		return
	}
	Engine.ScheduleCacheMisses.Inc()
}

func RecordPayment(status string) {
	Business.PaymentsTotal.WithLabelValues(status).Inc()
}

func SetOverdueMembers(count int) {
	Business.OverdueMembers.Set(float64(count))
}

func RecordSweepSettled(count int) {
	Business.SweepSettledTotal.Add(float64(count))
}

func RecordEventConsumed(routingKey, outcome string) {
	Business.EventsConsumed.WithLabelValues(routingKey, outcome).Inc()
}
