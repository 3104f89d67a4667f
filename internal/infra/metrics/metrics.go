package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_transitions_total",
			Help: "Lead accept/decline attempts by outcome",
		},
		[]string{"transition", "outcome"},
	)

	leadsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leads",
			Help: "Stored leads by status",
		},
		[]string{"status"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_notifications_total",
			Help: "Acceptance notifications by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordLeadTransition counts an accept or decline attempt. outcome is
// "ok" or the error code that stopped it.
func RecordLeadTransition(transition, outcome string) {
	leadTransitions.WithLabelValues(transition, outcome).Inc()
}

func SetLeadsByStatus(status string, n int) {
	leadsByStatus.WithLabelValues(status).Set(float64(n))
}

func RecordNotification(err error) {
	if err != nil {
		notifications.WithLabelValues("error").Inc()
		return
	}
	notifications.WithLabelValues("sent").Inc()
}

// Notifier matches usecase.Notifier without importing it.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

type countingNotifier struct {
	next Notifier
}

// CountNotifications wraps a notifier so every send is counted.
func CountNotifications(next Notifier) Notifier {
	return &countingNotifier{next: next}
}

func (n *countingNotifier) Notify(ctx context.Context, to, subject, body string) error {
	err := n.next.Notify(ctx, to, subject, body)
	RecordNotification(err)
	return err
}
