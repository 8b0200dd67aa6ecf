// Package registry groups venue scrapers by city, dispatches concurrent
// fetches, and caches per-venue results with a TTL.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"padeltime/internal/availability"
	"padeltime/internal/cache"
	"padeltime/internal/logger"
	"padeltime/internal/scraper"
)

// Factory builds a fresh single-use scraper.
type Factory func() scraper.Scraper

type entry struct {
	city  availability.City
	name  string
	build Factory
}

// Registry holds the (city, venue) → factory mapping and the shared result
// cache. Construct one at startup, register every known venue, and hand it
// to consumers; all operations are safe for concurrent use once
// registration is done.
type Registry struct {
	entries []entry // registration order, kept for deterministic fan-out results
	store   cache.Store
}

// New creates a registry caching results in store.
func New(store cache.Store) *Registry {
	return &Registry{store: store}
}

// Register adds a scraper factory under the (city, name) pair a probe
// instance reports. Registering the same pair twice is a configuration
// error, not a silent overwrite.
func (r *Registry) Register(build Factory) error {
	probe := build()
	city, name := probe.City(), probe.Name()
	for _, e := range r.entries {
		if e.city == city && e.name == name {
			return fmt.Errorf("scraper %q already registered for city %q", name, city)
		}
	}
	r.entries = append(r.entries, entry{city: city, name: name, build: build})
	return nil
}

// ScraperNames returns the sorted venue names registered for city. Unknown
// cities yield an empty list.
func (r *Registry) ScraperNames(city availability.City) []string {
	names := make([]string, 0)
	for _, e := range r.entries {
		if e.city == city {
			names = append(names, e.name)
		}
	}
	sort.Strings(names)
	return names
}

// Cities returns the sorted distinct cities with at least one registered
// scraper.
func (r *Registry) Cities() []string {
	seen := make(map[availability.City]bool)
	cities := make([]string, 0)
	for _, e := range r.entries {
		if !seen[e.city] {
			seen[e.city] = true
			cities = append(cities, string(e.city))
		}
	}
	sort.Strings(cities)
	return cities
}

func cacheKey(city availability.City, name string, date time.Time) string {
	return fmt.Sprintf("%s|%s|%s", city, name, date.Format("2006-01-02"))
}

// ScrapeOne fetches one venue's availability for date. It returns nil when
// (city, name) is not registered. With useCache, an unexpired cache entry is
// returned without any network call; otherwise a fresh scraper instance runs
// and the result is written through, failures included, so a broken site is
// not hammered again within the TTL.
func (r *Registry) ScrapeOne(ctx context.Context, name string, date time.Time, city availability.City, useCache bool) *availability.CourtAvailability {
	var found *entry
	for i := range r.entries {
		if r.entries[i].city == city && r.entries[i].name == name {
			found = &r.entries[i]
			break
		}
	}
	if found == nil {
		return nil
	}

	key := cacheKey(city, name, date)
	if useCache {
		if cached, ok := r.store.Get(ctx, key); ok {
			logger.IncrCounter("registry.cache_hit")
			return cached
		}
	}

	start := time.Now()
	result := scraper.ScrapeSafe(ctx, found.build(), date)
	logger.IncrCounter("registry.scrape")
	logger.RecordTiming("registry.scrape", time.Since(start))
	if result.Err != "" {
		logger.Warn("venue scrape failed", logger.Fields{
			"venue": name,
			"city":  string(city),
			"error": result.Err,
		})
	}

	r.store.Set(ctx, key, result)
	return result
}

// ScrapeAll fetches every venue registered for city concurrently and waits
// for all of them. Results come back in registration order; a venue that
// fails contributes an error-valued snapshot rather than aborting its
// siblings. A city with no venues yields an empty list.
func (r *Registry) ScrapeAll(ctx context.Context, date time.Time, city availability.City, useCache bool) []*availability.CourtAvailability {
	targets := make([]entry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.city == city {
			targets = append(targets, e)
		}
	}

	results := make([]*availability.CourtAvailability, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i] = r.ScrapeOne(ctx, name, date, city, useCache)
		}(i, target.name)
	}
	wg.Wait()

	out := make([]*availability.CourtAvailability, 0, len(results))
	for _, result := range results {
		if result != nil {
			out = append(out, result)
		}
	}
	return out
}

// ScrapeDateRange builds a multi-day view keyed by ISO date, one date at a
// time; each date still fans out across venues concurrently.
func (r *Registry) ScrapeDateRange(ctx context.Context, start time.Time, days int, city availability.City, useCache bool) map[string][]*availability.CourtAvailability {
	out := make(map[string][]*availability.CourtAvailability, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		out[date.Format("2006-01-02")] = r.ScrapeAll(ctx, date, city, useCache)
	}
	return out
}

// HasCacheForDate reports whether city has at least one registered venue and
// every one of them holds an unexpired cache entry for date. Consumers use
// it to predict whether a request will trigger live fetches; it is a pure
// read and refreshes nothing.
func (r *Registry) HasCacheForDate(ctx context.Context, date time.Time, city availability.City) bool {
	found := false
	for _, e := range r.entries {
		if e.city != city {
			continue
		}
		found = true
		if !r.store.Contains(ctx, cacheKey(city, e.name, date)) {
			return false
		}
	}
	return found
}

// ClearCache evicts every cached result for all cities and dates.
func (r *Registry) ClearCache(ctx context.Context) {
	r.store.Clear(ctx)
}
