package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	WebhookEvents   *prometheus.CounterVec
	ViewsRecorded   *prometheus.CounterVec
	LikeToggles     *prometheus.CounterVec
	ReconcileSweeps *prometheus.CounterVec
	ParkedEvents    prometheus.Gauge
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the service collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		WebhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vidhub",
			Name:      "webhook_events_total",
			Help:      "Webhook deliveries by outcome.",
		}, []string{"outcome"}),
		ViewsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vidhub",
			Name:      "views_total",
			Help:      "View requests by result (counted, deduplicated, degraded).",
		}, []string{"result"}),
		LikeToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vidhub",
			Name:      "like_toggles_total",
			Help:      "Like toggles by resulting state.",
		}, []string{"liked"}),
		ReconcileSweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vidhub",
			Name:      "reconcile_events_total",
			Help:      "Parked webhook events processed by the reconciler, by result.",
		}, []string{"result"}),
		ParkedEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vidhub",
			Name:      "parked_events",
			Help:      "Parked webhook events seen at the start of the last sweep.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vidhub",
			Name:      "operation_duration_seconds",
			Help:      "Duration of coordinator calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
	}
	reg.MustRegister(
		m.WebhookEvents,
		m.ViewsRecorded,
		m.LikeToggles,
		m.ReconcileSweeps,
		m.ParkedEvents,
		m.RequestDuration,
	)
	return m
}
