// Package metrics exposes Prometheus instrumentation for play sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"svw.info/powerline/internal/ports"
)

const namespace = "powerline"

var (
	// movesTotal counts move attempts.
	// Labels: result (legal, illegal)
	movesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "moves_total",
		Help:      "Move attempts by outcome",
	}, []string{"result"})

	undosTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "undos_total",
		Help:      "Successful undo operations",
	})

	// levelsCompleted counts solved levels.
	// Labels: difficulty
	levelsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "levels_completed_total",
		Help:      "Levels solved, by difficulty",
	}, []string{"difficulty"})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "active",
		Help:      "Live play sessions",
	})

	// hintsTotal counts hint requests.
	// Labels: result (found, none, error)
	hintsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "hint",
		Name:      "requests_total",
		Help:      "Hint searches by outcome",
	}, []string{"result"})

	hintLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "hint",
		Name:      "latency_seconds",
		Help:      "Hint search wall time in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
	})

	hintNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "hint",
		Name:      "nodes",
		Help:      "Positions scored per hint search",
		Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
	})
)

// RecordMove records a move attempt.
func RecordMove(legal bool) {
	if legal {
		movesTotal.WithLabelValues("legal").Inc()
		return
	}
	movesTotal.WithLabelValues("illegal").Inc()
}

func RecordUndo() { undosTotal.Inc() }

func RecordLevelComplete(difficulty string) {
	levelsCompleted.WithLabelValues(difficulty).Inc()
}

func SessionOpened() { sessionsActive.Inc() }

func SessionClosed() { sessionsActive.Dec() }

// RecordHint records a finished hint search.
func RecordHint(found bool, st ports.Stats, err error) {
	switch {
	case err != nil:
		hintsTotal.WithLabelValues("error").Inc()
	case found:
		hintsTotal.WithLabelValues("found").Inc()
	default:
		hintsTotal.WithLabelValues("none").Inc()
	}
	hintLatency.Observe(st.Duration.Seconds())
	hintNodes.Observe(float64(st.Nodes))
}
