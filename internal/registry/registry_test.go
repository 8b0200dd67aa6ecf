package registry

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"padeltime/internal/availability"
	"padeltime/internal/cache"
	"padeltime/internal/scraper"
)

// stubScraper counts its invocations and returns either a fixed slot list or
// an error, standing in for a real venue site.
type stubScraper struct {
	name  string
	city  availability.City
	slots []availability.TimeSlot
	err   error
	calls *atomic.Int64
}

func (s *stubScraper) Name() string            { return s.name }
func (s *stubScraper) City() availability.City { return s.city }
func (s *stubScraper) BaseURL() string         { return "https://" + s.name + ".example.com" }

func (s *stubScraper) Scrape(_ context.Context, date time.Time) (*availability.CourtAvailability, error) {
	if s.calls != nil {
		s.calls.Add(1)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &availability.CourtAvailability{
		VenueName: s.name,
		VenueURL:  s.BaseURL(),
		Date:      date,
		Slots:     s.slots,
		ScrapedAt: time.Now(),
	}, nil
}

func stubFactory(s *stubScraper) Factory {
	return func() scraper.Scraper { return s }
}

func testDate() time.Time {
	return time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
}

func threeSlots() []availability.TimeSlot {
	return []availability.TimeSlot{{Time: "08:00"}, {Time: "08:30"}, {Time: "09:00"}}
}

func TestRegisterCollision(t *testing.T) {
	reg := New(cache.NewMemory(time.Minute))

	if err := reg.Register(stubFactory(&stubScraper{name: "V1", city: availability.Klaipeda})); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := reg.Register(stubFactory(&stubScraper{name: "V1", city: availability.Klaipeda})); err == nil {
		t.Error("expected error for duplicate (city, name) registration")
	}
	// Same name in another city is a different venue.
	if err := reg.Register(stubFactory(&stubScraper{name: "V1", city: availability.Kaunas})); err != nil {
		t.Errorf("same name in different city should register: %v", err)
	}
}

func TestScraperNamesAndCities(t *testing.T) {
	reg := New(cache.NewMemory(time.Minute))
	for _, s := range []*stubScraper{
		{name: "Zeta", city: availability.Klaipeda},
		{name: "Alpha", city: availability.Klaipeda},
		{name: "Mid", city: availability.Kaunas},
	} {
		if err := reg.Register(stubFactory(s)); err != nil {
			t.Fatalf("register %s: %v", s.name, err)
		}
	}

	names := reg.ScraperNames(availability.Klaipeda)
	if !reflect.DeepEqual(names, []string{"Alpha", "Zeta"}) {
		t.Errorf("ScraperNames = %v, want sorted [Alpha Zeta]", names)
	}
	if got := reg.ScraperNames(availability.City("unknown")); len(got) != 0 {
		t.Errorf("unknown city names = %v, want empty", got)
	}
	if cities := reg.Cities(); !reflect.DeepEqual(cities, []string{"kaunas", "klaipeda"}) {
		t.Errorf("Cities = %v, want sorted [kaunas klaipeda]", cities)
	}
}

func TestScrapeOneCaching(t *testing.T) {
	var calls atomic.Int64
	reg := New(cache.NewMemory(5 * time.Minute))
	if err := reg.Register(stubFactory(&stubScraper{
		name: "V1", city: availability.Klaipeda, slots: threeSlots(), calls: &calls,
	})); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	first := reg.ScrapeOne(ctx, "V1", testDate(), availability.Klaipeda, true)
	if first == nil {
		t.Fatal("expected a result for registered venue")
	}
	second := reg.ScrapeOne(ctx, "V1", testDate(), availability.Klaipeda, true)

	if calls.Load() != 1 {
		t.Errorf("scrape count = %d, want exactly 1 within the TTL window", calls.Load())
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("second call should return the cached value")
	}

	// Bypassing the cache always fetches and still writes through.
	reg.ScrapeOne(ctx, "V1", testDate(), availability.Klaipeda, false)
	if calls.Load() != 2 {
		t.Errorf("scrape count after bypass = %d, want 2", calls.Load())
	}
	reg.ScrapeOne(ctx, "V1", testDate(), availability.Klaipeda, true)
	if calls.Load() != 2 {
		t.Errorf("bypass should have refreshed the cache, got %d fetches", calls.Load())
	}
}

func TestScrapeOneUnregistered(t *testing.T) {
	reg := New(cache.NewMemory(time.Minute))
	if err := reg.Register(stubFactory(&stubScraper{name: "V1", city: availability.Klaipeda})); err != nil {
		t.Fatal(err)
	}

	if got := reg.ScrapeOne(context.Background(), "Nope", testDate(), availability.Klaipeda, true); got != nil {
		t.Errorf("unregistered venue = %v, want nil", got)
	}
	// Registered name in the wrong city is also absent.
	if got := reg.ScrapeOne(context.Background(), "V1", testDate(), availability.Kaunas, true); got != nil {
		t.Errorf("wrong city = %v, want nil", got)
	}
}

func TestScrapeOneCachesFailures(t *testing.T) {
	var calls atomic.Int64
	reg := New(cache.NewMemory(5 * time.Minute))
	if err := reg.Register(stubFactory(&stubScraper{
		name: "Down", city: availability.Klaipeda, err: errors.New("status 503"), calls: &calls,
	})); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	first := reg.ScrapeOne(ctx, "Down", testDate(), availability.Klaipeda, true)
	if first.Err == "" {
		t.Fatal("expected error result")
	}
	reg.ScrapeOne(ctx, "Down", testDate(), availability.Klaipeda, true)

	if calls.Load() != 1 {
		t.Errorf("failed results should be cached too; got %d fetches", calls.Load())
	}
}

func TestScrapeAll(t *testing.T) {
	reg := New(cache.NewMemory(time.Minute))
	for _, s := range []*stubScraper{
		{name: "V1", city: availability.City("x"), slots: threeSlots()},
		{name: "V2", city: availability.City("x"), err: errors.New("request timed out")},
		{name: "Other", city: availability.City("y"), slots: threeSlots()},
	} {
		if err := reg.Register(stubFactory(s)); err != nil {
			t.Fatal(err)
		}
	}

	results := reg.ScrapeAll(context.Background(), testDate(), availability.City("x"), true)

	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}
	// Registration order is preserved.
	if results[0].VenueName != "V1" || results[1].VenueName != "V2" {
		t.Errorf("result order = [%s %s], want [V1 V2]", results[0].VenueName, results[1].VenueName)
	}
	if results[0].Err != "" || len(results[0].Slots) != 3 {
		t.Errorf("V1 = %d slots, err %q; want 3 slots and no error", len(results[0].Slots), results[0].Err)
	}
	if results[1].Err == "" || len(results[1].Slots) != 0 {
		t.Errorf("V2 = %d slots, err %q; want 0 slots and an error", len(results[1].Slots), results[1].Err)
	}
}

func TestScrapeAllEmptyCity(t *testing.T) {
	reg := New(cache.NewMemory(time.Minute))
	results := reg.ScrapeAll(context.Background(), testDate(), availability.Klaipeda, true)
	if len(results) != 0 {
		t.Errorf("empty city result count = %d, want 0", len(results))
	}
}

func TestScrapeAllConcurrent(t *testing.T) {
	// Each stub blocks until every sibling has started, so a sequential
	// dispatch would deadlock the test (guarded by the timeout below).
	const venues = 4
	started := make(chan struct{}, venues)
	release := make(chan struct{})

	reg := New(cache.NewMemory(time.Minute))
	for _, name := range []string{"A", "B", "C", "D"} {
		name := name
		if err := reg.Register(func() scraper.Scraper {
			return &blockingScraper{name: name, started: started, release: release}
		}); err != nil {
			t.Fatal(err)
		}
	}

	done := make(chan []*availability.CourtAvailability)
	go func() {
		done <- reg.ScrapeAll(context.Background(), testDate(), availability.Klaipeda, true)
	}()

	for i := 0; i < venues; i++ {
		select {
		case <-started:
		case <-time.After(5 * time.Second):
			t.Fatal("scrapes did not start concurrently")
		}
	}
	close(release)

	select {
	case results := <-done:
		if len(results) != venues {
			t.Errorf("result count = %d, want %d", len(results), venues)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ScrapeAll did not finish")
	}
}

type blockingScraper struct {
	name    string
	started chan<- struct{}
	release <-chan struct{}
}

func (b *blockingScraper) Name() string            { return b.name }
func (b *blockingScraper) City() availability.City { return availability.Klaipeda }
func (b *blockingScraper) BaseURL() string         { return "https://example.com" }

func (b *blockingScraper) Scrape(_ context.Context, date time.Time) (*availability.CourtAvailability, error) {
	b.started <- struct{}{}
	<-b.release
	return &availability.CourtAvailability{VenueName: b.name, Date: date, ScrapedAt: time.Now()}, nil
}

func TestScrapeDateRange(t *testing.T) {
	reg := New(cache.NewMemory(time.Minute))
	if err := reg.Register(stubFactory(&stubScraper{
		name: "V1", city: availability.Klaipeda, slots: threeSlots(),
	})); err != nil {
		t.Fatal(err)
	}

	byDate := reg.ScrapeDateRange(context.Background(), testDate(), 3, availability.Klaipeda, true)

	if len(byDate) != 3 {
		t.Fatalf("date count = %d, want 3", len(byDate))
	}
	for _, day := range []string{"2026-02-10", "2026-02-11", "2026-02-12"} {
		results, ok := byDate[day]
		if !ok {
			t.Errorf("missing date %s", day)
			continue
		}
		if len(results) != 1 {
			t.Errorf("%s result count = %d, want 1", day, len(results))
		}
	}
}

func TestHasCacheForDate(t *testing.T) {
	var calls atomic.Int64
	reg := New(cache.NewMemory(5 * time.Minute))
	for _, name := range []string{"V1", "V2"} {
		if err := reg.Register(stubFactory(&stubScraper{
			name: name, city: availability.Klaipeda, slots: threeSlots(), calls: &calls,
		})); err != nil {
			t.Fatal(err)
		}
	}
	ctx := context.Background()

	if reg.HasCacheForDate(ctx, testDate(), availability.Klaipeda) {
		t.Error("no cache yet, predicate should be false")
	}

	// One venue cached is not enough.
	reg.ScrapeOne(ctx, "V1", testDate(), availability.Klaipeda, true)
	if reg.HasCacheForDate(ctx, testDate(), availability.Klaipeda) {
		t.Error("only one of two venues cached, predicate should be false")
	}

	reg.ScrapeOne(ctx, "V2", testDate(), availability.Klaipeda, true)
	if !reg.HasCacheForDate(ctx, testDate(), availability.Klaipeda) {
		t.Error("both venues cached, predicate should be true")
	}

	// The probe itself must not fetch.
	if calls.Load() != 2 {
		t.Errorf("predicate triggered fetches: %d calls, want 2", calls.Load())
	}

	// Other dates and cities are unaffected.
	if reg.HasCacheForDate(ctx, testDate().AddDate(0, 0, 1), availability.Klaipeda) {
		t.Error("different date should not be cached")
	}
	if reg.HasCacheForDate(ctx, testDate(), availability.Kaunas) {
		t.Error("city with no venues should be false")
	}

	reg.ClearCache(ctx)
	if reg.HasCacheForDate(ctx, testDate(), availability.Klaipeda) {
		t.Error("predicate should be false immediately after ClearCache")
	}
}
