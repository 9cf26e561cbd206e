// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(scheduleFetchDuration) }

var scheduleFetchDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "schedule_fetch_duration_seconds",
		Help:    "Latency of calls to the upstream schedule API.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	},
	[]string{"success"},
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ObserveScheduleFetch records one upstream round trip.
func ObserveScheduleFetch(elapsed time.Duration, success bool) {
	scheduleFetchDuration.WithLabelValues(strconv.FormatBool(success)).Observe(elapsed.Seconds())
}
