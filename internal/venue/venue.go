package venue

import "padeltime/internal/scraper"

// All returns factories for every known venue scraper, in the order they
// are registered at process start.
func All() []func() scraper.Scraper {
	return []func() scraper.Scraper{
		NewA1,
		NewBsport,
		NewSkycop,
		NewFourPadel,
		NewTennisSpace,
		NewPadelHouse,
	}
}
