// Package venue contains one scraper per supported booking site. Four venues
// run the same savitarna self-service system (guest login plus a booking
// table); one exposes a JSON ticket API; one serves a timetable wrapped in
// JSON with two alternative layouts and a color-coded price legend. The
// shared pieces live in savitarna.go and internal/scraper; everything else
// is deliberately bespoke per site.
package venue
