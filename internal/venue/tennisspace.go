package venue

import (
	"padeltime/internal/availability"
	"padeltime/internal/scraper"
)

// NewTennisSpace builds the scraper for Tennis Space in Kaunas.
func NewTennisSpace() scraper.Scraper {
	return &savitarna{
		name:      "Tennis Space",
		city:      availability.Kaunas,
		baseURL:   "https://savitarna.tennisspace.lt",
		loginPath: "/user/login",
		placeID:   4,
		image:     "https://savitarna.tennisspace.lt/themes/tennis_space/images/logo-colored.svg",
		login:     "anonimas",
		password:  "F;293nj`yA-mVaQ.",
	}
}
