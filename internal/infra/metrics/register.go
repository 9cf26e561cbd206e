package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once       sync.Once
	collectors []prometheus.Collector
)

// register is called by init() in each metrics file to enqueue collectors.
func register(cs ...prometheus.Collector) {
	collectors = append(collectors, cs...)
}

// MustRegister registers all enqueued collectors with the default registry exactly once.
func MustRegister() {
	once.Do(func() { MustRegisterWith(prometheus.DefaultRegisterer) })
}

// MustRegisterWith registers all enqueued collectors with reg. It panics on duplicates,
// so callers other than MustRegister should pass a fresh registry.
func MustRegisterWith(reg prometheus.Registerer) {
	if len(collectors) > 0 {
		reg.MustRegister(collectors...)
	}
}
