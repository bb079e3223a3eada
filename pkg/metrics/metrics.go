package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records dispatch activity for the shop store.
type StoreMetrics struct {
	transitions  *prometheus.CounterVec
	ordersPlaced prometheus.Counter
	cartLines    prometheus.Gauge
	cartTotal    prometheus.Gauge
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_transitions_total",
		Help: "State transitions applied, by event kind and outcome.",
	}, []string{"event", "outcome"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders appended to the order log.",
	})
	cartLines := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_line_items",
		Help: "Distinct line items currently in the cart.",
	})
	cartTotal := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_total_amount",
		Help: "Grand total of the current cart in major currency units.",
	})
	reg.MustRegister(transitions, ordersPlaced, cartLines, cartTotal)
	return &StoreMetrics{
		transitions:  transitions,
		ordersPlaced: ordersPlaced,
		cartLines:    cartLines,
		cartTotal:    cartTotal,
	}
}

// ObserveTransition counts one dispatch for the given event kind.
func (m *StoreMetrics) ObserveTransition(event, outcome string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(event), normalizeLabel(outcome)).Inc()
}

// IncOrderPlaced counts one appended order.
func (m *StoreMetrics) IncOrderPlaced() {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// SetCartGauges publishes the current cart size and total. The total is a
// gauge for dashboards only; exact amounts stay decimal inside the store.
func (m *StoreMetrics) SetCartGauges(lines int, total float64) {
	if m == nil || m.cartLines == nil {
		return
	}
	m.cartLines.Set(float64(lines))
	m.cartTotal.Set(total)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
