// Package availability defines the normalized data model every venue scraper
// produces: 30-minute time slots, per-venue snapshots, and the closed set of
// supported cities.
package availability

import "time"

// City groups venues by location. Only one city's venues are queried per
// aggregate request.
type City string

const (
	Klaipeda City = "klaipeda"
	Kaunas   City = "kaunas"
)

// Cities lists every supported city.
var Cities = []City{Klaipeda, Kaunas}

// Valid reports whether c is one of the supported cities.
func (c City) Valid() bool {
	for _, known := range Cities {
		if c == known {
			return true
		}
	}
	return false
}

// TimeSlot is a single bookable 30-minute window at one venue.
type TimeSlot struct {
	Time      string   `json:"time"` // "HH:MM"
	CourtName string   `json:"court,omitempty"`
	Price     *float64 `json:"price,omitempty"` // euros for the 30-minute slot
}

// CourtAvailability is one venue's availability snapshot for one date.
// A snapshot is created fresh by each scrape and never mutated afterwards; a
// newer scrape supersedes it in the cache rather than updating it in place.
// Err is set only when the scrape failed, in which case Slots is empty.
type CourtAvailability struct {
	VenueName  string     `json:"venue_name"`
	VenueURL   string     `json:"venue_url"`
	VenueImage string     `json:"venue_image,omitempty"`
	Date       time.Time  `json:"date"`
	Slots      []TimeSlot `json:"slots"`
	ScrapedAt  time.Time  `json:"scraped_at"`
	Err        string     `json:"error,omitempty"`
}

// HasAvailability reports whether the snapshot carries at least one slot and
// no scrape error.
func (a *CourtAvailability) HasAvailability() bool {
	return len(a.Slots) > 0 && a.Err == ""
}

// AvailableCount returns the raw slot count, including slots a caller may
// later filter out.
func (a *CourtAvailability) AvailableCount() int {
	return len(a.Slots)
}
