package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "arena"

// Metrics are updated from slots connected to the arena's units
type Metrics struct {
	EventsTotal *prometheus.CounterVec
	PointsTotal prometheus.Counter
	Units       prometheus.Gauge
	Subscribers prometheus.Gauge
	Dropped     prometheus.Counter
	Ticks       prometheus.Counter
}

// New registers the arena metrics with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of game events fired by units",
		}, []string{"event"}),

		PointsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_total",
			Help:      "Total number of points scored",
		}),

		Units: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "units",
			Help:      "Number of units in the arena",
		}),

		Subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "watchers",
			Help:      "Number of open event subscriptions",
		}),

		Dropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_messages_total",
			Help:      "Messages dropped because a watcher was too slow",
		}),

		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clock_ticks_total",
			Help:      "Number of clock ticks that walked the arena",
		}),
	}
}
