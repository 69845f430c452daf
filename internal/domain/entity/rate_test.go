package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrencyList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"simple list", "USD,EUR,RUB", []string{"USD", "EUR", "RUB"}},
		{"whitespace and case", " usd , Eur ", []string{"USD", "EUR"}},
		{"empty items dropped", "USD,,EUR,", []string{"USD", "EUR"}},
		{"empty input", "", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseCurrencyList(tc.raw))
		})
	}
}

func TestDatesSortedMostRecentFirst(t *testing.T) {
	series := TimeSeries{
		"2023-10-20": {},
		"2023-10-25": {},
		"2023-10-22": {},
	}

	assert.Equal(t, []string{"2023-10-25", "2023-10-22", "2023-10-20"}, series.Dates())
}
