package venue

import (
	"padeltime/internal/availability"
	"padeltime/internal/scraper"
)

// NewSkycop builds the scraper for Scycop Padel in Klaipeda.
func NewSkycop() scraper.Scraper {
	return &savitarna{
		name:     "Scycop Padel",
		city:     availability.Klaipeda,
		baseURL:  "https://savitarna.padelionamai.lt",
		placeID:  4,
		image:    "https://padelionamai.lt/wp-content/uploads/2021/05/main-logo.png",
		login:    "svecias",
		password: "svecias",
	}
}
