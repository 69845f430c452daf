package trend

import (
	"testing"
	"time"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestCompare(t *testing.T) {
	assert.Equal(t, Up, Compare(5.0, floatPtr(4.0)))
	assert.Equal(t, Down, Compare(4.0, floatPtr(5.0)))
	assert.Equal(t, Flat, Compare(5.0, floatPtr(5.0)))

	// Absence of history is flat, not an error
	assert.Equal(t, Flat, Compare(5.0, nil))
}

func TestDirectionArrow(t *testing.T) {
	assert.Equal(t, "↑", Up.Arrow())
	assert.Equal(t, "↓", Down.Arrow())
	assert.Equal(t, "", Flat.Arrow())
}

// buildSeries creates a series with one snapshot per day, ending at end,
// with the given buying rate per day offset
func buildSeries(end time.Time, days int, rateFor func(dayOffset int) float64) entity.TimeSeries {
	series := entity.TimeSeries{}
	for i := 0; i < days; i++ {
		date := end.AddDate(0, 0, -i)
		series[date.Format(entity.DateFormat)] = entity.Snapshot{
			Timestamp: date,
			Rates: map[string]entity.RateRecord{
				"USD": {CountryName: "UNITED STATES", BuyingRate: rateFor(i), SellingRate: rateFor(i) + 0.5},
			},
		}
	}
	return series
}

func TestHistorySampling(t *testing.T) {
	end := time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC)
	series := buildSeries(end, 20, func(i int) float64 { return 30.0 + float64(i) })

	points := History(series, "USD", 10, 2)

	// 20 consecutive daily dates, stride 2, max 10 => exactly 10 points
	assert.Len(t, points, 10)

	// Most recent first, each exactly 2 days apart
	for i, p := range points {
		expected := end.AddDate(0, 0, -i*2).Format(entity.DateFormat)
		assert.Equal(t, expected, p.Date)
		assert.NotNil(t, p.BuyingRate)
	}
}

func TestHistoryStopsAtOldestDate(t *testing.T) {
	end := time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC)
	series := buildSeries(end, 5, func(i int) float64 { return 30.0 })

	points := History(series, "USD", 10, 2)

	// Only dates -0, -2, -4 fall inside the stored range
	assert.Len(t, points, 3)
}

func TestHistoryMarksGapsAbsent(t *testing.T) {
	end := time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC)
	series := buildSeries(end, 5, func(i int) float64 { return 30.0 })

	// Drop the snapshot two days back: a gap, not a failure
	delete(series, end.AddDate(0, 0, -2).Format(entity.DateFormat))

	points := History(series, "USD", 3, 2)
	assert.Len(t, points, 3)
	assert.NotNil(t, points[0].BuyingRate)
	assert.Nil(t, points[1].BuyingRate)
	assert.NotNil(t, points[2].BuyingRate)
}

func TestHistoryUnknownCurrency(t *testing.T) {
	end := time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC)
	series := buildSeries(end, 5, func(i int) float64 { return 30.0 })

	points := History(series, "XXX", 3, 2)
	assert.Len(t, points, 3)
	for _, p := range points {
		assert.Nil(t, p.BuyingRate)
	}
}

func TestHistoryEmptySeries(t *testing.T) {
	assert.Nil(t, History(entity.TimeSeries{}, "USD", 10, 2))
}

func TestNormalize(t *testing.T) {
	points := []Point{
		{Date: "2023-10-25", BuyingRate: floatPtr(1.0)},
		{Date: "2023-10-23", BuyingRate: floatPtr(2.0)},
		{Date: "2023-10-21", BuyingRate: floatPtr(3.0)},
	}

	bars := Normalize(points, 20)
	assert.Len(t, bars, 3)
	assert.Equal(t, 0, bars[0].Length)
	assert.Equal(t, 10, bars[1].Length)
	assert.Equal(t, 20, bars[2].Length)
}

func TestNormalizeFlatHistory(t *testing.T) {
	points := []Point{
		{Date: "2023-10-25", BuyingRate: floatPtr(5.0)},
		{Date: "2023-10-23", BuyingRate: floatPtr(5.0)},
	}

	// max == min must not divide by zero
	bars := Normalize(points, 20)
	assert.Len(t, bars, 2)
	assert.Equal(t, 0, bars[0].Length)
	assert.Equal(t, 0, bars[1].Length)
}

func TestNormalizeSkipsAbsentPoints(t *testing.T) {
	points := []Point{
		{Date: "2023-10-25", BuyingRate: floatPtr(1.0)},
		{Date: "2023-10-23"},
		{Date: "2023-10-21", BuyingRate: floatPtr(3.0)},
	}

	bars := Normalize(points, 20)
	assert.Len(t, bars, 2)
	assert.Equal(t, 0, bars[0].Length)
	assert.Equal(t, 20, bars[1].Length)

	// Input must not be mutated
	assert.Nil(t, points[1].BuyingRate)
}
