package venue

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"padeltime/internal/availability"
	"padeltime/internal/scraper"
)

// savitarna scrapes a venue running the savitarna self-service booking
// system: a POST login with the venue's shared guest credentials, then a GET
// of the reservation table for one date. The four venues on this system
// differ only in configuration.
type savitarna struct {
	name      string
	city      availability.City
	baseURL   string
	loginPath string // "" posts to the base URL itself
	placeID   int    // 0 when the venue has a single place
	image     string
	login     string
	password  string
}

func (s *savitarna) Name() string            { return s.name }
func (s *savitarna) City() availability.City { return s.city }
func (s *savitarna) BaseURL() string         { return s.baseURL }

func (s *savitarna) Scrape(ctx context.Context, date time.Time) (*availability.CourtAvailability, error) {
	client := scraper.NewClient()
	defer client.CloseIdleConnections()

	form := url.Values{
		"LoginForm[var_login]":    {s.login},
		"LoginForm[var_password]": {s.password},
	}
	if _, err := scraper.PostForm(ctx, client, s.baseURL+s.loginPath, form); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	body, err := scraper.Fetch(ctx, client, s.bookingURL(date))
	if err != nil {
		return nil, fmt.Errorf("booking page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing booking page: %w", err)
	}

	return &availability.CourtAvailability{
		VenueName:  s.name,
		VenueURL:   s.baseURL + "/reservation/short",
		VenueImage: s.image,
		Date:       date,
		Slots:      parseBookingTable(doc, nil),
		ScrapedAt:  time.Now(),
	}, nil
}

func (s *savitarna) bookingURL(date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/reservation/short?", s.baseURL)
	if s.placeID > 0 {
		fmt.Fprintf(&b, "iPlaceId=%d&", s.placeID)
	}
	// The sites expect the date unpadded, e.g. "2026-2-5".
	fmt.Fprintf(&b, "sDate=%d-%d-%d", date.Year(), int(date.Month()), date.Day())
	return b.String()
}

// parseBookingTable extracts slots from the savitarna booking table: every
// available cell carries an a[data-time] link, and the row's sticky column
// names the court. Cells without a time link are skipped, never fatal. When
// a price legend is supplied, each slot's price is resolved from the cell's
// background color.
func parseBookingTable(doc *goquery.Document, colorToPrice map[string]float64) []availability.TimeSlot {
	slots := make([]availability.TimeSlot, 0)
	doc.Find("td.booking-slot-available").Each(func(_ int, cell *goquery.Selection) {
		slotTime, ok := cell.Find("a[data-time]").First().Attr("data-time")
		if !ok || slotTime == "" {
			return
		}

		slot := availability.TimeSlot{Time: slotTime}
		court := strings.TrimSpace(cell.Closest("tr").Find("td.rbt-sticky-col span").First().Text())
		if court != "" {
			slot.CourtName = court
		}
		if style, ok := cell.Attr("style"); ok {
			slot.Price = scraper.SlotPriceFromStyle(style, colorToPrice)
		}
		slots = append(slots, slot)
	})
	return slots
}
