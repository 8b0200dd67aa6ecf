package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"#AABBCC", "#aabbcc"},
		{"rgb(170, 187, 204)", "#aabbcc"},
		{"RGB(170,187,204)", "#aabbcc"},
		{"#b9e5fb", "#b9e5fb"},
		{"  #B9E5FB  ", "#b9e5fb"},
		{"rgb( 141 , 216 , 248 )", "#8dd8f8"},
		{"rgb(300,0,0)", ""},
		{"blue", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeColor(tt.input); got != tt.expected {
				t.Errorf("NormalizeColor(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing test HTML: %v", err)
	}
	return doc
}

func TestParsePriceLegend(t *testing.T) {
	doc := mustDoc(t, `
		<div class="legend">
			<div class="legend-item"><span style="background-color: #B9E5FB"></span> 24 €</div>
			<div class="legend-item"><span style="background-color: rgb(141,216,248)"></span> 38 €</div>
			<div class="legend-item"><span>no swatch</span> 10 €</div>
		</div>`)

	legend := ParsePriceLegend(doc)

	if len(legend) != 2 {
		t.Fatalf("legend size = %d, want 2", len(legend))
	}
	if legend["#b9e5fb"] != 24 {
		t.Errorf("legend[#b9e5fb] = %v, want 24", legend["#b9e5fb"])
	}
	if legend["#8dd8f8"] != 38 {
		t.Errorf("legend[#8dd8f8] = %v, want 38", legend["#8dd8f8"])
	}
}

func TestParseTimeDescriptionPrices(t *testing.T) {
	doc := mustDoc(t, `
		<div class="pricing">
			<div class="time-description">
				<div class="color" style="background-color: #9DB0DA"></div>
				<div class="description">20 €/val.</div>
			</div>
			<div class="time-description">
				<div class="color" style="background-color: #1C2B4A"></div>
				<div class="description">38 €/val.</div>
			</div>
			<div class="time-description">
				<div class="color"></div>
				<div class="description">99 €/val.</div>
			</div>
		</div>`)

	legend := ParseTimeDescriptionPrices(doc)

	if len(legend) != 2 {
		t.Fatalf("legend size = %d, want 2", len(legend))
	}
	if legend["#9db0da"] != 20 {
		t.Errorf("legend[#9db0da] = %v, want 20", legend["#9db0da"])
	}
	if legend["#1c2b4a"] != 38 {
		t.Errorf("legend[#1c2b4a] = %v, want 38", legend["#1c2b4a"])
	}
}

func TestSlotPriceFromStyle(t *testing.T) {
	legend := map[string]float64{"#b9e5fb": 24, "#8dd8f8": 23}

	tests := []struct {
		name     string
		style    string
		expected *float64
	}{
		// Hourly 24 over a 30-minute slot.
		{"even half", "background-color: #b9e5fb", ptr(12)},
		// Hourly 23 halves to 11.5; rounds half-to-even to 12.
		{"half rounds to even", "background-color: #8dd8f8", ptr(12)},
		{"unknown color", "background-color: #ffffff", nil},
		{"no background", "color: red", nil},
		{"empty style", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotPriceFromStyle(tt.style, legend)
			switch {
			case tt.expected == nil && got != nil:
				t.Errorf("SlotPriceFromStyle(%q) = %v, want nil", tt.style, *got)
			case tt.expected != nil && got == nil:
				t.Errorf("SlotPriceFromStyle(%q) = nil, want %v", tt.style, *tt.expected)
			case tt.expected != nil && got != nil && *got != *tt.expected:
				t.Errorf("SlotPriceFromStyle(%q) = %v, want %v", tt.style, *got, *tt.expected)
			}
		})
	}

	if got := SlotPriceFromStyle("background-color: #b9e5fb", nil); got != nil {
		t.Errorf("nil legend should resolve no price, got %v", *got)
	}
}

func ptr(f float64) *float64 { return &f }
