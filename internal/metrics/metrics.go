// Package metrics holds the Prometheus collectors for dice rolls and shared
// grid traffic
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Grid update operations
const (
	OpCreate = "create"
	OpUpdate = "update"
)

// Metrics groups the domain collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	diceRolls       *prometheus.CounterVec
	gridUpdates     *prometheus.CounterVec
	gridSubscribers prometheus.Gauge
}

// New registers the collectors with reg. Passing nil uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		diceRolls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabletop_dice_rolls_total",
				Help: "Total number of dice rolled, partitioned by die.",
			},
			[]string{"die"},
		),
		gridUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabletop_grid_updates_total",
				Help: "Total number of shared grid writes, partitioned by operation.",
			},
			[]string{"op"},
		),
		gridSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tabletop_grid_subscribers",
			Help: "Number of open shared grid subscriptions.",
		}),
	}
}

// DiceRolled counts n dice of the given kind ("d6")
func (m *Metrics) DiceRolled(die string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.diceRolls.WithLabelValues(die).Add(float64(n))
}

// GridUpdated counts one shared grid write
func (m *Metrics) GridUpdated(op string) {
	if m == nil {
		return
	}
	m.gridUpdates.WithLabelValues(op).Inc()
}

// SubscriberAdded tracks a new subscription
func (m *Metrics) SubscriberAdded() {
	if m == nil {
		return
	}
	m.gridSubscribers.Inc()
}

// SubscriberRemoved tracks a closed subscription
func (m *Metrics) SubscriberRemoved() {
	if m == nil {
		return
	}
	m.gridSubscribers.Dec()
}
