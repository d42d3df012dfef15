package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "holdlight"

var (
	HoldToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "grid",
		Name:      "hold_toggles_total",
		Help:      "Hold toggles by resulting state name",
	}, []string{"state"})

	GridOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "grid",
		Name:      "operations_total",
		Help:      "Grid operations by kind and outcome",
	}, []string{"operation", "outcome"})

	MarkedHolds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "grid",
		Name:      "marked_holds",
		Help:      "Number of holds that are not off",
	})

	StoredBoulders = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "boulders",
		Help:      "Number of boulders in the store",
	})

	LEDPushes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "led",
		Name:      "pushes_total",
		Help:      "Frames pushed to the LED driver",
	})

	LEDErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "led",
		Name:      "driver_errors_total",
		Help:      "Failed pushes to the LED driver",
	})

	ComposeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "led",
		Name:      "compose_seconds",
		Help:      "Time spent recomputing and pushing a frame",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	Brightness = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "led",
		Name:      "brightness",
		Help:      "Global LED brightness in [0, 1]",
	})
)

// ObservePush records one frame push and whether the driver accepted it.
func ObservePush(started time.Time, err error) {
	ComposeDuration.Observe(time.Since(started).Seconds())
	LEDPushes.Inc()

	if err != nil {
		LEDErrors.Inc()
	}
}

func ObserveOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	GridOperations.WithLabelValues(operation, outcome).Inc()
}

// Handler serves every promauto-registered collector.
func Handler() http.Handler {
	return promhttp.Handler()
}
