package services

import (
	"context"
	"fmt"
	"log"

	"vision2schedule-backend/internal/models"
	"vision2schedule-backend/internal/nearby"
)

// CombinedFeed merges candidate events from several upstream feeds. A
// partial outage is tolerated as long as at least one feed answers; only a
// total failure propagates, so the matcher can surface it as unavailable.
type CombinedFeed struct {
	feeds []nearby.EventFeed
}

// NewCombinedFeed creates a feed over the given upstream feeds.
func NewCombinedFeed(feeds ...nearby.EventFeed) *CombinedFeed {
	return &CombinedFeed{feeds: feeds}
}

// Query collects candidates from every upstream feed in order.
func (c *CombinedFeed) Query(ctx context.Context, origin models.Coordinate, category string) ([]models.CandidateEvent, error) {
	if len(c.feeds) == 0 {
		return nil, fmt.Errorf("no event feeds configured")
	}

	var merged []models.CandidateEvent
	var lastErr error
	succeeded := 0

	for _, feed := range c.feeds {
		candidates, err := feed.Query(ctx, origin, category)
		if err != nil {
			lastErr = err
			log.Printf("event feed failed, continuing with remaining feeds: %v", err)
			continue
		}
		succeeded++
		merged = append(merged, candidates...)
	}

	if succeeded == 0 {
		return nil, fmt.Errorf("all event feeds failed: %w", lastErr)
	}

	return merged, nil
}
