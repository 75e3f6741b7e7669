// Package metrics exposes Prometheus collectors for the serving layer.
// The core simulation stays metrics-free; the server feeds these from
// session counters and snapshot events, and cmd/web serves the scrape
// endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "staroids"

var (
	// TickDuration observes how long one server tick took, across all
	// sessions it stepped.
	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "server",
		Name:      "tick_duration_seconds",
		Help:      "Wall time spent stepping all sessions in one server tick.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	})

	// ActiveSessions tracks connected clients, one session each.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "server",
		Name:      "active_sessions",
		Help:      "Connected clients, each owning one game session.",
	})

	// GamesFinished counts runs that reached game over.
	GamesFinished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "server",
		Name:      "games_finished_total",
		Help:      "Game-over events across all sessions.",
	})

	// SessionFaults counts recovered panics inside session steps.
	SessionFaults = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "server",
		Name:      "session_faults_total",
		Help:      "Recovered simulation faults that forced a session restart.",
	})

	// Entities is the live entity population summed over all sessions,
	// labeled by kind.
	Entities = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "world",
		Name:      "entities",
		Help:      "Live entities across all sessions, by kind.",
	}, []string{"kind"})

	// SpawnRefusals counts spawns refused by the population caps,
	// labeled by kind.
	SpawnRefusals = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "world",
		Name:      "spawn_refusals_total",
		Help:      "Spawns refused by population caps, by kind.",
	}, []string{"kind"})
)
