package venue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"padeltime/internal/availability"
	"padeltime/internal/scraper"
)

// padelHouse scrapes Padel House in Kaunas. The timetable endpoint answers a
// POST with JSON wrapping an HTML table; older responses are plain HTML. Two
// layouts exist (the savitarna-style booking table and a "desktop" table)
// and slot prices are encoded through a color legend.
type padelHouse struct {
	baseURL string
}

// NewPadelHouse builds the Padel House scraper.
func NewPadelHouse() scraper.Scraper {
	return &padelHouse{baseURL: "https://rezervacija.padelhouse.lt"}
}

func (p *padelHouse) Name() string            { return "Padel House" }
func (p *padelHouse) City() availability.City { return availability.Kaunas }
func (p *padelHouse) BaseURL() string         { return p.baseURL }

func (p *padelHouse) Scrape(ctx context.Context, date time.Time) (*availability.CourtAvailability, error) {
	client := scraper.NewClient()
	defer client.CloseIdleConnections()

	form := url.Values{"dateFor": {date.Format("2006-01-02")}}
	body, err := scraper.PostForm(ctx, client, p.baseURL+"/lt/timetable", form)
	if err != nil {
		return nil, fmt.Errorf("timetable request: %w", err)
	}

	// Usually {"data": "<table class=\"desktop\">..."}; fall back to
	// treating the body as plain HTML.
	html := string(body)
	var payload struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Data != "" {
		html = payload.Data
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing timetable: %w", err)
	}

	legend := scraper.ParsePriceLegend(doc)
	if len(legend) == 0 {
		legend = scraper.ParseTimeDescriptionPrices(doc)
	}
	if len(legend) == 0 && doc.Find("td.booking-slot-available").Length() > 0 {
		// Booking layout without a visible legend; colors observed on the
		// live site.
		legend = map[string]float64{"#b9e5fb": 24, "#8dd8f8": 38}
	}

	slots := parseBookingTable(doc, legend)
	if len(slots) == 0 {
		slots = parseDesktopTable(doc, legend)
	}

	return &availability.CourtAvailability{
		VenueName:  p.Name(),
		VenueURL:   p.baseURL,
		VenueImage: "https://rezervacija.padelhouse.lt/build/images/logo-full.png",
		Date:       date,
		Slots:      slots,
		ScrapedAt:  time.Now(),
	}, nil
}

// parseDesktopTable handles the fallback layout: one tbody row per court
// with the court name in a th, and one td per slot carrying data-time.
// Cells marked not-available or missing a time are skipped.
func parseDesktopTable(doc *goquery.Document, colorToPrice map[string]float64) []availability.TimeSlot {
	table := doc.Find("table.desktop").First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}

	slots := make([]availability.TimeSlot, 0)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		court := strings.TrimSpace(row.Find("th").First().Text())
		if court == "" {
			return
		}
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			if cell.HasClass("not-available") {
				return
			}
			slotTime, ok := cell.Attr("data-time")
			if !ok || slotTime == "" {
				return
			}
			style, _ := cell.Attr("style")
			slots = append(slots, availability.TimeSlot{
				Time:      slotTime,
				CourtName: court,
				Price:     scraper.SlotPriceFromStyle(style, colorToPrice),
			})
		})
	})
	return slots
}
