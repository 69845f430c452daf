// internal/infrastructure/api/superrich_client.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
)

// SuperrichClient pulls the daily rate quotation from the vendor's API
// using a freshly extracted credential. The client performs no caching and
// no retries; retry policy belongs to the scrape pipeline.
type SuperrichClient struct {
	apiURL     string
	httpClient *http.Client
}

// NewSuperrichClient creates a new rate API client
func NewSuperrichClient(apiURL string, httpClient *http.Client) *SuperrichClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	return &SuperrichClient{
		apiURL:     apiURL,
		httpClient: httpClient,
	}
}

// rateResponse represents the response structure from the rate API.
// Pointer fields distinguish an absent field from a zero value, so a shape
// change upstream surfaces as a parse failure instead of a zero-rate record.
type rateResponse struct {
	Data struct {
		ExchangeRate []struct {
			CurrencyUnit string  `json:"cUnit"`
			CountryName  *string `json:"countryName"`
			Rate         []struct {
				Buying  *float64 `json:"cBuying"`
				Selling *float64 `json:"cSelling"`
			} `json:"rate"`
		} `json:"exchangeRate"`
	} `json:"data"`
}

// FetchRates calls the quotation endpoint with basic auth and normalizes
// the response into a currency -> rate record mapping. The vendor publishes
// multiple rate tiers per currency; the first tier is authoritative.
func (c *SuperrichClient) FetchRates(ctx context.Context, cred entity.Credential) (map[string]entity.RateRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate request: %w", err)
	}

	req.SetBasicAuth(cred.Username, cred.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: c.apiURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed rateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ParseError{Field: "data"}
	}

	if len(parsed.Data.ExchangeRate) == 0 {
		return nil, &ParseError{Field: "data.exchangeRate"}
	}

	rates := make(map[string]entity.RateRecord, len(parsed.Data.ExchangeRate))
	for _, item := range parsed.Data.ExchangeRate {
		if item.CurrencyUnit == "" {
			return nil, &ParseError{Field: "cUnit"}
		}
		if item.CountryName == nil {
			return nil, &ParseError{Field: "countryName"}
		}
		if len(item.Rate) == 0 {
			return nil, &ParseError{Field: "rate"}
		}

		primary := item.Rate[0]
		if primary.Buying == nil {
			return nil, &ParseError{Field: "cBuying"}
		}
		if primary.Selling == nil {
			return nil, &ParseError{Field: "cSelling"}
		}

		rates[item.CurrencyUnit] = entity.RateRecord{
			CountryName: *item.CountryName,
			BuyingRate:  *primary.Buying,
			SellingRate: *primary.Selling,
		}
	}

	return rates, nil
}
