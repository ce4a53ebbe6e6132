package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Registration admission attempts by outcome",
		},
		[]string{"outcome"},
	)

	checkIns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "check_ins_total",
			Help: "Successful check-ins by entry method",
		},
		[]string{"method"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Bulk notification dispatches by kind and status",
		},
		[]string{"kind", "status"},
	)
)

func RecordRegistration(outcome string) {
	registrations.WithLabelValues(outcome).Inc()
}

func RecordCheckIn(method string) {
	checkIns.WithLabelValues(method).Inc()
}

func RecordNotification(kind, status string) {
	notifications.WithLabelValues(kind, status).Inc()
}
