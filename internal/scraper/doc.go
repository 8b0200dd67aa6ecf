// Package scraper defines the contract every venue scraper implements and
// the plumbing they share: a short-lived browser-like HTTP client, fetch
// helpers that fail on unexpected status codes, price-legend parsing, and
// the error-containing wrapper the registry calls.
//
// Each booking site has incompatible markup, APIs, and login flows, so the
// per-venue logic stays bespoke (see internal/venue); this package only
// holds what is genuinely common.
package scraper
