package venue

import (
	"padeltime/internal/availability"
	"padeltime/internal/scraper"
)

// NewBsport builds the scraper for Bsport Arena in Klaipeda.
func NewBsport() scraper.Scraper {
	return &savitarna{
		name:     "Bsport Arena",
		city:     availability.Klaipeda,
		baseURL:  "https://savitarna.bsport.lt",
		placeID:  2,
		image:    "https://savitarna.bsport.lt/themes/bsport_arena/images/bsport_logo.png",
		login:    "Svecias",
		password: "JJQ1vzqyMGzZ29oPKYe3g3mJiXun7qA",
	}
}
