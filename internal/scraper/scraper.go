package scraper

import (
	"context"
	"time"

	"padeltime/internal/availability"
)

// Scraper fetches and parses one venue's availability for one date.
// Implementations are single-use: the registry builds a fresh instance per
// invocation and discards it afterwards, trading a little connection setup
// for isolation between calls.
type Scraper interface {
	Name() string
	City() availability.City
	BaseURL() string
	Scrape(ctx context.Context, date time.Time) (*availability.CourtAvailability, error)
}

// ScrapeSafe runs s.Scrape and converts any error into a snapshot with Err
// set and no slots. One venue's outage must never abort a concurrent
// aggregate fetch, so this is the only entry point the registry uses.
func ScrapeSafe(ctx context.Context, s Scraper, date time.Time) *availability.CourtAvailability {
	result, err := s.Scrape(ctx, date)
	if err != nil {
		return &availability.CourtAvailability{
			VenueName: s.Name(),
			VenueURL:  s.BaseURL(),
			Date:      date,
			ScrapedAt: time.Now(),
			Err:       err.Error(),
		}
	}
	return result
}
