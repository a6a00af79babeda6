package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// QuoteMetrics records configurator activity and cart persistence.
type QuoteMetrics struct {
	actions      *prometheus.CounterVec
	committed    prometheus.Counter
	saves        *prometheus.CounterVec
	saveDuration prometheus.Histogram
}

// NewQuoteMetrics registers the quoting metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wizard_actions_total",
		Help: "Configurator actions applied, labelled by action and whether the state changed.",
	}, []string{"action", "applied"})
	committed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_committed_total",
		Help: "Line items committed to a configurator cart.",
	})
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_saves_total",
		Help: "Cart persistence attempts.",
	}, []string{"result"})
	saveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_save_duration_seconds",
		Help:    "Duration of cart persistence in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(actions, committed, saves, saveDuration)
	return &QuoteMetrics{
		actions:      actions,
		committed:    committed,
		saves:        saves,
		saveDuration: saveDuration,
	}
}

// ObserveAction counts one configurator action.
func (m *QuoteMetrics) ObserveAction(action string, applied bool) {
	if m == nil || m.actions == nil {
		return
	}
	label := "false"
	if applied {
		label = "true"
	}
	m.actions.WithLabelValues(normalizeLabel(action), label).Inc()
}

// IncCommitted counts a line item entering the cart.
func (m *QuoteMetrics) IncCommitted() {
	if m == nil || m.committed == nil {
		return
	}
	m.committed.Inc()
}

// ObserveCartSave records the outcome and latency of a cart save.
func (m *QuoteMetrics) ObserveCartSave(result string, duration time.Duration) {
	if m == nil || m.saves == nil {
		return
	}
	m.saves.WithLabelValues(normalizeLabel(result)).Inc()
	m.saveDuration.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
