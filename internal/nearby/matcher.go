// Package nearby ranks candidate events around a resolved venue.
package nearby

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"vision2schedule-backend/internal/geo"
	"vision2schedule-backend/internal/models"
)

// DefaultRadiusKm is the search radius applied to every nearby query.
const DefaultRadiusKm = 5.0

// GeoResolver maps a venue name or address to coordinates.
type GeoResolver interface {
	// Resolve returns (nil, nil) when the venue is simply unknown, and a
	// non-nil error only for transport-level failures.
	Resolve(ctx context.Context, venue string) (*models.Coordinate, error)
}

// EventFeed returns candidate events around a coordinate.
type EventFeed interface {
	Query(ctx context.Context, origin models.Coordinate, category string) ([]models.CandidateEvent, error)
}

// Config carries the matcher's tunable settings.
type Config struct {
	RadiusKm float64
}

// Matcher produces a distance-bounded, ranked, deduplicated event list for
// a venue. It holds no state between calls; concurrent use is safe.
type Matcher struct {
	resolver GeoResolver
	feed     EventFeed
	radiusKm float64
}

// NewMatcher creates a matcher with the default search radius.
func NewMatcher(resolver GeoResolver, feed EventFeed) *Matcher {
	return NewMatcherWithConfig(resolver, feed, Config{RadiusKm: DefaultRadiusKm})
}

// NewMatcherWithConfig creates a matcher with explicit configuration.
func NewMatcherWithConfig(resolver GeoResolver, feed EventFeed, cfg Config) *Matcher {
	radius := cfg.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	return &Matcher{resolver: resolver, feed: feed, radiusKm: radius}
}

// FindNearby resolves the venue, queries the feed, and returns candidates
// within the radius, deduplicated and sorted by distance. A venue that
// cannot be geocoded yields ErrVenueNotResolved; a failed feed call yields
// ErrFeedUnavailable. In same-category mode an empty result is returned
// as-is — the caller decides whether to re-query in all-nearby mode.
func (m *Matcher) FindNearby(ctx context.Context, venue, category string, mode models.SearchMode) ([]models.RankedNearbyEvent, error) {
	venue = strings.TrimSpace(venue)
	if venue == "" {
		return nil, fmt.Errorf("%w: empty venue", ErrVenueNotResolved)
	}

	origin, err := m.resolver.Resolve(ctx, venue)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVenueNotResolved, err)
	}
	if origin == nil || !origin.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrVenueNotResolved, venue)
	}

	feedCategory := ""
	if mode == models.SearchModeSameCategory {
		feedCategory = category
	}

	candidates, err := m.feed.Query(ctx, *origin, feedCategory)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	ranked := m.rank(ctx, *origin, candidates, category, mode)
	return ranked, nil
}

// rank filters candidates by radius and mode, deduplicates keeping the
// closest instance, and sorts by distance with title as tiebreaker.
func (m *Matcher) rank(ctx context.Context, origin models.Coordinate, candidates []models.CandidateEvent, category string, mode models.SearchMode) []models.RankedNearbyEvent {
	closest := make(map[string]models.RankedNearbyEvent)

	for _, candidate := range candidates {
		coord, ok := m.candidateCoordinate(ctx, candidate)
		if !ok {
			// Partial feed data never aborts the whole query.
			log.Printf("nearby: dropping candidate without resolvable venue | title=%q", candidate.Title)
			continue
		}

		distance := geo.DistanceKm(origin, coord)
		if distance > m.radiusKm {
			continue
		}

		if mode == models.SearchModeSameCategory &&
			!strings.EqualFold(strings.TrimSpace(candidate.Category), strings.TrimSpace(category)) {
			continue
		}

		identity := models.CandidateIdentity(candidate)
		if existing, seen := closest[identity]; seen && existing.DistanceKm <= distance {
			continue
		}
		closest[identity] = models.RankedNearbyEvent{
			CandidateEvent: candidate,
			DistanceKm:     distance,
		}
	}

	ranked := make([]models.RankedNearbyEvent, 0, len(closest))
	for _, event := range closest {
		ranked = append(ranked, event)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].Title < ranked[j].Title
	})

	return ranked
}

// candidateCoordinate returns the candidate's coordinate, resolving its
// venue string when the feed did not provide one.
func (m *Matcher) candidateCoordinate(ctx context.Context, candidate models.CandidateEvent) (models.Coordinate, bool) {
	if candidate.Coordinate != nil && candidate.Coordinate.Valid() {
		return *candidate.Coordinate, true
	}

	if strings.TrimSpace(candidate.Venue) == "" {
		return models.Coordinate{}, false
	}

	coord, err := m.resolver.Resolve(ctx, candidate.Venue)
	if err != nil || coord == nil || !coord.Valid() {
		return models.Coordinate{}, false
	}
	return *coord, true
}
