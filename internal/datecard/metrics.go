package datecard

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	venueOutcomeFound         = "found"
	venueOutcomeBroad         = "broad"
	venueOutcomeFallbackBlank = "fallback_blank"
	venueOutcomeFallbackEmpty = "fallback_empty"
	venueOutcomeFallbackError = "fallback_error"
)

var (
	dateCardsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datecard_created_total",
			Help: "Total number of date cards created, by category",
		},
		[]string{"category"},
	)

	dateCardFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datecard_create_failures_total",
			Help: "Date card creations that failed, by stage",
		},
		[]string{"stage"},
	)

	venueLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datecard_venue_lookups_total",
			Help: "Venue lookups by outcome",
		},
		[]string{"outcome"},
	)

	venueLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "datecard_venue_lookup_seconds",
			Help:    "Time spent resolving a venue",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	venueCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datecard_venue_cache_total",
			Help: "Venue search cache lookups, by result",
		},
		[]string{"result"},
	)
)

func RecordDateCardCreated(category string) {
	dateCardsCreated.WithLabelValues(category).Inc()
}

func RecordDateCardFailure(stage string) {
	dateCardFailures.WithLabelValues(stage).Inc()
}

func RecordVenueLookup(outcome string, duration time.Duration) {
	venueLookups.WithLabelValues(outcome).Inc()
	venueLookupDuration.Observe(duration.Seconds())
}
