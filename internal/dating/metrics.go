package dating

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	swipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dating_swipes_total",
			Help: "Total number of swipes by direction",
		},
		[]string{"direction"},
	)

	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_matches_total",
			Help: "Total number of matches created",
		},
	)

	unmatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_unmatches_total",
			Help: "Total number of matches deactivated by a participant",
		},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dating_notifications_total",
			Help: "Realtime events by type and delivery result",
		},
		[]string{"type", "result"},
	)

	connectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dating_connected_clients",
			Help: "Number of live websocket connections",
		},
	)

	backfillCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_date_card_backfill_created_total",
			Help: "Date cards created by the background backfill",
		},
	)
)
