package scraper

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	hexColorPattern    = regexp.MustCompile(`^#([0-9a-f]{6})\b`)
	rgbColorPattern    = regexp.MustCompile(`^rgb\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
	backgroundPattern  = regexp.MustCompile(`(?i)background-color\s*:\s*([#\w(),\s]+)`)
	legendPricePattern = regexp.MustCompile(`([\d.,]+)\s*€?`)
	hourlyPricePattern = regexp.MustCompile(`([\d.,]+)\s*€/val`)
)

// NormalizeColor canonicalizes a CSS color to lowercase "#rrggbb" so swatch
// colors written in different notations compare equal. Accepts "#rrggbb" and
// "rgb(r, g, b)" in any case; returns "" for anything else.
func NormalizeColor(color string) string {
	color = strings.ToLower(strings.TrimSpace(color))
	if color == "" {
		return ""
	}
	if m := hexColorPattern.FindStringSubmatch(color); m != nil {
		return "#" + m[1]
	}
	if m := rgbColorPattern.FindStringSubmatch(color); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return ""
		}
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return ""
}

// styleColor extracts and normalizes the background-color of an inline style
// attribute. Returns "" when the style has none.
func styleColor(style string) string {
	m := backgroundPattern.FindStringSubmatch(style)
	if m == nil {
		return ""
	}
	return NormalizeColor(m[1])
}

// ParsePriceLegend builds a normalized-color → hourly price (euros) map from
// the booking table legend: div.legend-item entries holding a colored span
// swatch and a price like "24 €". Unparsable entries are skipped, not
// errors.
func ParsePriceLegend(doc *goquery.Document) map[string]float64 {
	colorToPrice := make(map[string]float64)
	doc.Find("div.legend-item").Each(func(_ int, item *goquery.Selection) {
		color := firstSwatchColor(item.Find("span"))
		if color == "" {
			return
		}
		m := legendPricePattern.FindStringSubmatch(strings.TrimSpace(item.Text()))
		if m == nil {
			return
		}
		if price, ok := parsePrice(m[1]); ok {
			colorToPrice[color] = price
		}
	})
	return colorToPrice
}

// ParseTimeDescriptionPrices builds a normalized-color → hourly price map
// from the alternative .time-description legend layout, where a div.color
// swatch sits next to a div.description like "20 €/val.".
func ParseTimeDescriptionPrices(doc *goquery.Document) map[string]float64 {
	colorToPrice := make(map[string]float64)
	doc.Find(".time-description").Each(func(_ int, item *goquery.Selection) {
		color := firstSwatchColor(item.Find("div.color"))
		if color == "" {
			return
		}
		desc := strings.TrimSpace(item.Find("div.description").First().Text())
		m := hourlyPricePattern.FindStringSubmatch(desc)
		if m == nil {
			return
		}
		if price, ok := parsePrice(m[1]); ok {
			colorToPrice[color] = price
		}
	})
	return colorToPrice
}

// SlotPriceFromStyle resolves one slot cell's price from its inline style
// and a legend map. Legend prices are per hour while each slot is a
// 30-minute window, so the result is the hourly price halved and rounded
// half-to-even to a whole euro. Returns nil when there is no legend, no
// style, or no color match.
func SlotPriceFromStyle(style string, colorToPrice map[string]float64) *float64 {
	if len(colorToPrice) == 0 || style == "" {
		return nil
	}
	color := styleColor(style)
	if color == "" {
		return nil
	}
	hourly, ok := colorToPrice[color]
	if !ok {
		return nil
	}
	price := math.RoundToEven(hourly / 2)
	return &price
}

// firstSwatchColor returns the normalized background color of the first
// element in sel that carries one.
func firstSwatchColor(sel *goquery.Selection) string {
	found := ""
	sel.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		style, ok := el.Attr("style")
		if !ok {
			return true
		}
		if color := styleColor(style); color != "" {
			found = color
			return false
		}
		return true
	})
	return found
}

func parsePrice(raw string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
