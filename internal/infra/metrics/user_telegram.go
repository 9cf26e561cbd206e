package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		subscribersRegisteredTotal,
		telegramCommandsReceivedTotal,
		telegramRateLimitTriggeredTotal,
	)
}

var (
	subscribersRegisteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subscribers_registered_total",
			Help: "Total number of new subscribers registered.",
		},
	)

	telegramCommandsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_received_total",
			Help: "Counts incoming commands and button presses from users.",
		},
		[]string{"command"},
	)

	telegramRateLimitTriggeredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_rate_limit_triggered_total",
			Help: "Total number of times users have been rate-limited.",
		},
	)
)

func IncSubscribersRegistered() {
	subscribersRegisteredTotal.Inc()
}

func IncTelegramCommand(command string) {
	telegramCommandsReceivedTotal.WithLabelValues(norm(command)).Inc()
}

func IncRateLimitTriggered() {
	telegramRateLimitTriggeredTotal.Inc()
}
