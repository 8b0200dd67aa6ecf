package venue

import (
	"padeltime/internal/availability"
	"padeltime/internal/scraper"
)

// NewA1 builds the scraper for A1 Padel in Klaipeda. The site requires a
// login before the booking table is visible; the venue publishes a shared
// guest account for read-only access.
func NewA1() scraper.Scraper {
	return &savitarna{
		name:      "A1 Padel",
		city:      availability.Klaipeda,
		baseURL:   "https://savitarna.a1padel.lt",
		loginPath: "/user/login",
		image:     "https://a1padel.lt/wp-content/uploads/2024/02/a1padel_green.svg",
		login:     "A1 Padel",
		password:  "ciDERedrU3wlfrekacHo",
	}
}
