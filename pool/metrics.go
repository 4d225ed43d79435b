package pool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for one pool. Attach it with
// WithMetrics; all observation happens inside the pool, callers only
// register and scrape.
type Metrics struct {
	submitted prometheus.Counter
	completed prometheus.Counter
	failed    prometheus.Counter
	cancelled prometheus.Counter
	inFlight  prometheus.Gauge
	duration  prometheus.Histogram
}

// NewMetrics creates pool collectors labelled with the given pool name and
// registers them on reg. A nil registerer leaves the collectors unregistered,
// which is useful in tests.
func NewMetrics(reg prometheus.Registerer, poolName string) *Metrics {
	labels := prometheus.Labels{"pool": poolName}

	m := &Metrics{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "filebatch_items_submitted_total",
			Help:        "Total number of items submitted to the pool.",
			ConstLabels: labels,
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "filebatch_items_completed_total",
			Help:        "Total number of items processed successfully.",
			ConstLabels: labels,
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "filebatch_items_failed_total",
			Help:        "Total number of items that ended in a failure outcome.",
			ConstLabels: labels,
		}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "filebatch_items_cancelled_total",
			Help:        "Total number of items dropped before processing due to cancellation.",
			ConstLabels: labels,
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "filebatch_items_in_flight",
			Help:        "Number of items currently being processed.",
			ConstLabels: labels,
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "filebatch_item_duration_seconds",
			Help:        "Per-item processing duration.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}),
	}

	if reg != nil {
		reg.MustRegister(m.submitted, m.completed, m.failed, m.cancelled, m.inFlight, m.duration)
	}
	return m
}

func (m *Metrics) observeSubmit() {
	if m == nil {
		return
	}
	m.submitted.Inc()
}

func (m *Metrics) observeStart() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *Metrics) observeDone(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.failed.Inc()
	} else {
		m.completed.Inc()
	}
}

func (m *Metrics) observeCancel() {
	if m == nil {
		return
	}
	m.cancelled.Inc()
}
