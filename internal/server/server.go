// Package server is the HTTP consumer of the scraper registry: a small JSON
// API over the aggregate scrape operations plus cache maintenance.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"padeltime/internal/availability"
	"padeltime/internal/logger"
	"padeltime/internal/registry"
)

// Server exposes the registry over HTTP.
type Server struct {
	registry *registry.Registry
}

// New creates a server around an already-populated registry.
func New(reg *registry.Registry) *Server {
	return &Server{registry: reg}
}

// Routes returns the router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/cities", s.handleCities)
	r.Get("/api/availability", s.handleAvailability)
	r.Post("/refresh", s.handleRefresh)
	return r
}

type availabilityResponse struct {
	Date   string          `json:"date"`
	City   string          `json:"city"`
	From   string          `json:"time_from,omitempty"`
	Cached bool            `json:"cached"`
	Venues []venueResponse `json:"venues"`
}

type venueResponse struct {
	Name           string         `json:"name"`
	URL            string         `json:"url"`
	Image          string         `json:"image,omitempty"`
	AvailableSlots int            `json:"available_slots"`
	Error          string         `json:"error,omitempty"`
	Slots          []slotResponse `json:"slots"`
}

type slotResponse struct {
	Time  string   `json:"time"`
	Court string   `json:"court,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// handleAvailability serves the aggregate view for one date and city,
// optionally narrowed to a single venue and filtered by start time. The
// cached flag reports whether the request could be satisfied without live
// fetches, which upstream rate limiting keys on.
func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date := time.Now()
	if raw := q.Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		date = parsed
	}

	city := availability.Klaipeda
	if raw := q.Get("city"); raw != "" {
		city = availability.City(raw)
		if !city.Valid() {
			writeError(w, http.StatusBadRequest, "unknown city")
			return
		}
	}

	cached := s.registry.HasCacheForDate(r.Context(), date, city)

	var venues []*availability.CourtAvailability
	if name := q.Get("venue"); name != "" {
		if result := s.registry.ScrapeOne(r.Context(), name, date, city, true); result != nil {
			venues = append(venues, result)
		}
	} else {
		venues = s.registry.ScrapeAll(r.Context(), date, city, true)
	}

	from := q.Get("from")
	if from != "" {
		// Filter copies; the cached snapshots stay intact.
		filtered := make([]*availability.CourtAvailability, 0, len(venues))
		for _, v := range venues {
			filtered = append(filtered, availability.FilterFrom(v, from))
		}
		venues = filtered
	}

	resp := availabilityResponse{
		Date:   date.Format("2006-01-02"),
		City:   string(city),
		From:   from,
		Cached: cached,
		Venues: make([]venueResponse, 0, len(venues)),
	}
	for _, v := range venues {
		vr := venueResponse{
			Name:           v.VenueName,
			URL:            v.VenueURL,
			Image:          v.VenueImage,
			AvailableSlots: v.AvailableCount(),
			Error:          v.Err,
			Slots:          make([]slotResponse, 0, len(v.Slots)),
		}
		for _, slot := range v.Slots {
			vr.Slots = append(vr.Slots, slotResponse{Time: slot.Time, Court: slot.CourtName, Price: slot.Price})
		}
		resp.Venues = append(resp.Venues, vr)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"cities": s.registry.Cities()})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.registry.ClearCache(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "cache_cleared"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", nil, err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// requestLogger logs every request with its duration and records the timing.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		logger.RecordTiming("http.request", elapsed)
		logger.Info("request", logger.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": elapsed.String(),
		})
	})
}
