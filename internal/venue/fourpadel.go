package venue

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"padeltime/internal/availability"
	"padeltime/internal/scraper"
)

// fourPadel scrapes 4Padel Arena in Klaipeda through the activezone ticket
// API: a single paginated JSON query filtered by date range and location.
type fourPadel struct {
	apiURL     string
	venuePage  string
	locationID int
	cityID     int
}

// NewFourPadel builds the 4Padel Arena scraper.
func NewFourPadel() scraper.Scraper {
	return &fourPadel{
		apiURL:     "https://activezone.fun",
		venuePage:  "https://4padelarena.lt",
		locationID: 189,
		cityID:     3,
	}
}

func (f *fourPadel) Name() string            { return "4Padel Arena" }
func (f *fourPadel) City() availability.City { return availability.Klaipeda }
func (f *fourPadel) BaseURL() string         { return f.venuePage }

type ticketsResponse struct {
	Content []ticket `json:"content"`
}

type ticket struct {
	Status     string `json:"status"`
	TicketTime string `json:"ticketTime"` // "06:00:00"
	Price      int    `json:"price"`      // cents
	Court      struct {
		Name string `json:"name"`
	} `json:"court"`
}

func (f *fourPadel) Scrape(ctx context.Context, date time.Time) (*availability.CourtAvailability, error) {
	client := scraper.NewClient()
	defer client.CloseIdleConnections()

	day := date.Format("2006-01-02")
	params := url.Values{}
	params.Set("page", "0")
	params.Set("size", "2000")
	params.Set("ticketFrom", day+" 00:00:00")
	params.Set("ticketTo", day+" 23:59:00")
	params.Set("locationIds", strconv.Itoa(f.locationID))
	params.Set("sportTypes", "padel")
	params.Set("isAuthorized", "true")
	params.Set("isAllCity", "false")
	params.Set("showSingle", "false")
	params.Set("cityId", strconv.Itoa(f.cityID))
	params.Set("isTrainer", "false")

	body, err := scraper.Fetch(ctx, client, f.apiURL+"/api/v1/settings/tickets/user?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("ticket API: %w", err)
	}

	var payload ticketsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding ticket API response: %w", err)
	}

	slots := make([]availability.TimeSlot, 0, len(payload.Content))
	for _, item := range payload.Content {
		if item.Status != "free" || len(item.TicketTime) < 5 {
			continue
		}
		slot := availability.TimeSlot{
			Time:      item.TicketTime[:5],
			CourtName: strings.TrimSpace(item.Court.Name),
		}
		if item.Price > 0 {
			// The API quotes cents.
			price := math.RoundToEven(float64(item.Price) / 100)
			slot.Price = &price
		}
		slots = append(slots, slot)
	}

	return &availability.CourtAvailability{
		VenueName:  f.Name(),
		VenueURL:   f.venuePage,
		VenueImage: "https://4padelarena.lt/wp-content/uploads/2024/02/4-PADEL-ARENA_logo_2023_B-2-166x73.png",
		Date:       date,
		Slots:      slots,
		ScrapedAt:  time.Now(),
	}, nil
}
