package handler

// QuoteResponse represents one currency in the latest-rates endpoint.
// Buying/selling are omitted when the snapshot holds no record for the code.
type QuoteResponse struct {
	Code        string   `json:"code"`
	CountryName string   `json:"country_name,omitempty"`
	BuyingRate  *float64 `json:"buying_rate,omitempty"`
	SellingRate *float64 `json:"selling_rate,omitempty"`
	BuyTrend    string   `json:"buy_trend"`
}

// LatestRatesResponse represents the response for the latest-rates endpoint
type LatestRatesResponse struct {
	Date   string          `json:"date"`
	Quotes []QuoteResponse `json:"quotes"`
}

// HistoryPointResponse represents one sampled history entry. A nil buying
// rate marks a missing-data gap.
type HistoryPointResponse struct {
	Date       string   `json:"date"`
	BuyingRate *float64 `json:"buying_rate"`
	BarLength  *int     `json:"bar_length,omitempty"`
}

// HistoryResponse represents the response for the history endpoint
type HistoryResponse struct {
	Currency string                 `json:"currency"`
	Points   []HistoryPointResponse `json:"points"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
