package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the server's prometheus instruments.
type Metrics struct {
	ActiveGames      prometheus.Gauge
	ConnectedClients prometheus.Gauge
	GamesCreated     prometheus.Counter
	GamesFinished    prometheus.Counter
	ActionsTotal     prometheus.Counter
}

// New creates and registers the server metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ActiveGames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "articulate",
			Name:      "active_games",
			Help:      "Number of games currently in the hub",
		}),
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "articulate",
			Name:      "connected_clients",
			Help:      "Number of connected websocket clients",
		}),
		GamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "articulate",
			Name:      "games_created_total",
			Help:      "Total number of games created",
		}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "articulate",
			Name:      "games_finished_total",
			Help:      "Total number of games that reached a winner",
		}),
		ActionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "articulate",
			Name:      "actions_total",
			Help:      "Total number of game actions applied",
		}),
	}

	reg.MustRegister(
		m.ActiveGames,
		m.ConnectedClients,
		m.GamesCreated,
		m.GamesFinished,
		m.ActionsTotal,
	)

	return m
}
