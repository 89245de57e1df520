// internal/datecard/venue.go
// Venue resolution with a deterministic fallback

package datecard

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultVenueTimeout   = 5 * time.Second
	DefaultCandidateLimit = 3
)

// SearchQuery is a venue search. When City is set the search is restricted to it.
type SearchQuery struct {
	Query string
	City  string
	Limit int
}

// SearchResult is one candidate returned by a venue search service.
// Coordinates are kept as the service returned them.
type SearchResult struct {
	Name        string `json:"name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// VenueSearchClient looks up places. Implementations must return an empty
// slice, not an error, when nothing matched.
type VenueSearchClient interface {
	Search(ctx context.Context, q SearchQuery) ([]SearchResult, error)
}

// NullSearchClient never finds anything. It is used when venue lookup is disabled.
type NullSearchClient struct{}

func (NullSearchClient) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	return []SearchResult{}, nil
}

// VenueResolver turns a location and venue type into a Venue. It never fails:
// every problem with the search service degrades to the fallback venue.
type VenueResolver struct {
	client  VenueSearchClient
	timeout time.Duration
	limit   int
	rng     Rand
	logger  *zap.Logger
}

type VenueResolverConfig struct {
	Timeout        time.Duration
	CandidateLimit int
}

func NewVenueResolver(client VenueSearchClient, cfg VenueResolverConfig, rng Rand, logger *zap.Logger) *VenueResolver {
	if client == nil {
		client = NullSearchClient{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultVenueTimeout
	}
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = DefaultCandidateLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &VenueResolver{
		client:  client,
		timeout: cfg.Timeout,
		limit:   cfg.CandidateLimit,
		rng:     rng,
		logger:  logger,
	}
}

// ResolveVenue finds a venue of venueType near locationName.
func (r *VenueResolver) ResolveVenue(ctx context.Context, locationName, venueType string) Venue {
	start := time.Now()
	outcome := venueOutcomeFallbackBlank
	defer func() {
		RecordVenueLookup(outcome, time.Since(start))
	}()

	humanized := HumanizeVenueType(venueType)
	fallback := FallbackVenue(locationName, venueType)

	if strings.TrimSpace(locationName) == "" {
		r.logger.Warn("no location for venue lookup, using fallback",
			zap.String("venue_type", venueType))
		return fallback
	}

	results, err := r.search(ctx, SearchQuery{
		Query: venueType + " in " + locationName,
		Limit: r.limit,
	})
	if err != nil {
		outcome = venueOutcomeFallbackError
		r.logger.Warn("venue search failed, using fallback",
			zap.String("location", locationName),
			zap.String("venue_type", venueType),
			zap.Error(err))
		return fallback
	}

	if len(results) > 0 {
		n := len(results)
		if n > r.limit {
			n = r.limit
		}
		outcome = venueOutcomeFound
		return r.toVenue(results[r.rng.Intn(n)], humanized, locationName)
	}

	// Nothing specific; try the venue type anywhere in the city.
	broad, err := r.search(ctx, SearchQuery{
		Query: humanized,
		City:  locationName,
		Limit: 1,
	})
	if err != nil {
		outcome = venueOutcomeFallbackError
		r.logger.Warn("broad venue search failed, using fallback",
			zap.String("location", locationName),
			zap.String("venue_type", venueType),
			zap.Error(err))
		return fallback
	}
	if len(broad) > 0 {
		outcome = venueOutcomeBroad
		return r.toVenue(broad[0], humanized, locationName)
	}

	outcome = venueOutcomeFallbackEmpty
	r.logger.Info("no venues found, using fallback",
		zap.String("location", locationName),
		zap.String("venue_type", venueType))
	return fallback
}

func (r *VenueResolver) search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type reply struct {
		results []SearchResult
		err     error
	}

	// The client may ignore ctx; the buffered channel lets it finish late without leaking.
	ch := make(chan reply, 1)
	go func() {
		results, err := r.client.Search(ctx, q)
		ch <- reply{results: results, err: err}
	}()

	select {
	case rep := <-ch:
		return rep.results, rep.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *VenueResolver) toVenue(res SearchResult, humanized, locationName string) Venue {
	name := strings.TrimSpace(res.Name)
	if name == "" {
		name = humanized + " in " + locationName
	}

	venue := Venue{
		Name:    name,
		Address: res.DisplayName,
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(res.Lat), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(res.Lon), 64)
	if latErr == nil && lonErr == nil {
		venue.Latitude = &lat
		venue.Longitude = &lon
	}

	return venue
}

// FallbackVenue is the venue used when no real place could be found.
func FallbackVenue(locationName, venueType string) Venue {
	humanized := HumanizeVenueType(venueType)
	return Venue{
		Name:    "Local " + humanized,
		Address: humanized + " in " + locationName,
	}
}

// HumanizeVenueType turns "hiking_trail" into "Hiking Trail".
func HumanizeVenueType(venueType string) string {
	words := strings.Split(venueType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
