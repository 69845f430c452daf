package entity

import (
	"sort"
	"strings"
	"time"
)

// DateFormat is the calendar-date key format used throughout the time series.
const DateFormat = "2006-01-02"

// RateRecord holds the primary-tier buy/sell quote for one currency.
// Records are immutable once captured in a snapshot.
type RateRecord struct {
	CountryName string  `json:"countryName"`
	BuyingRate  float64 `json:"buyingRate"`
	SellingRate float64 `json:"sellingRate"`
}

// Snapshot is one day's captured set of currency rate records.
type Snapshot struct {
	Timestamp time.Time             `json:"timestamp"`
	Rates     map[string]RateRecord `json:"rates"`
}

// Credential is the basic-auth pair extracted from the vendor's client
// script. It is rediscovered on every scrape run and never persisted.
type Credential struct {
	Username string
	Password string
}

// TimeSeries maps a calendar date ("2006-01-02") to the snapshot captured
// on that date. Keys are unique; entries older than the retention window
// are pruned on every write.
type TimeSeries map[string]Snapshot

// Dates returns the series' date keys sorted most recent first.
func (s TimeSeries) Dates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// ParseCurrencyList splits a comma-separated list of currency codes,
// trimming whitespace and uppercasing each code. Empty items are dropped.
func ParseCurrencyList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, strings.ToUpper(trimmed))
		}
	}
	return out
}

// LatestEntry is the maximum-date snapshot in a series together with the
// entry for the second-maximum date, when one exists. The previous date is
// whatever the prior stored date is, which may be gapped if a day's scrape
// failed.
type LatestEntry struct {
	Date         string
	Snapshot     Snapshot
	PreviousDate string
	Previous     *Snapshot
}
