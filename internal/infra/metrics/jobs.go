package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(scheduleChecksTotal, notificationsSentTotal) }

var (
	scheduleChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_checks_total",
			Help: "Total number of schedule change checks, labeled by outcome.",
		},
		[]string{"outcome"}, // 'unchanged', 'changed', 'fetch_failed', 'error'
	)

	notificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Schedule update deliveries, labeled by status.",
		},
		[]string{"status"}, // 'delivered', 'failed'
	)
)

func IncScheduleCheck(outcome string) {
	scheduleChecksTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncNotification(status string) {
	notificationsSentTotal.WithLabelValues(norm(status)).Inc()
}
