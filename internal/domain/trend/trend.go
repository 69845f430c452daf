// Package trend derives directional indicators and bounded history series
// from stored daily snapshots.
package trend

import (
	"math"
	"time"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
)

// Direction indicates how a rate moved against its prior stored value
type Direction string

const (
	Up   Direction = "UP"
	Down Direction = "DOWN"
	Flat Direction = "FLAT"
)

// Arrow returns the render glyph for the direction. Flat renders as nothing.
func (d Direction) Arrow() string {
	switch d {
	case Up:
		return "↑"
	case Down:
		return "↓"
	default:
		return ""
	}
}

// Compare returns the direction of current relative to previous. A nil
// previous means no history, which is Flat rather than an error.
func Compare(current float64, previous *float64) Direction {
	if previous == nil {
		return Flat
	}
	switch {
	case current > *previous:
		return Up
	case current < *previous:
		return Down
	default:
		return Flat
	}
}

// Point is one sampled history entry. BuyingRate is nil when the currency
// has no record on that date (a missing-data gap, not a failure).
type Point struct {
	Date       string
	BuyingRate *float64
}

// Bar is a render-ready history row produced by Normalize.
type Bar struct {
	Date   string
	Rate   float64
	Length int
}

// History samples the series for the requested currency, walking from the
// most recent date backward in strideDays steps. It stops once maxPoints
// dates are collected or the walk passes the oldest stored date. Points are
// ordered most recent first.
func History(series entity.TimeSeries, currency string, maxPoints, strideDays int) []Point {
	if len(series) == 0 || maxPoints <= 0 || strideDays <= 0 {
		return nil
	}

	dates := series.Dates()
	newest := dates[0]
	oldest := dates[len(dates)-1]

	start, err := time.Parse(entity.DateFormat, newest)
	if err != nil {
		return nil
	}

	points := make([]Point, 0, maxPoints)
	for i := 0; i < maxPoints; i++ {
		date := start.AddDate(0, 0, -i*strideDays).Format(entity.DateFormat)
		if date < oldest {
			break
		}

		point := Point{Date: date}
		if snap, ok := series[date]; ok {
			if rec, ok := snap.Rates[currency]; ok {
				rate := rec.BuyingRate
				point.BuyingRate = &rate
			}
		}
		points = append(points, point)
	}

	return points
}

// Normalize scales the non-absent buying rates in points to bar lengths in
// [0, width]. A flat history (max == min) normalizes every bar to zero. The
// input is not mutated; absent points carry no bar.
func Normalize(points []Point, width int) []Bar {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, p := range points {
		if p.BuyingRate == nil {
			continue
		}
		if *p.BuyingRate < min {
			min = *p.BuyingRate
		}
		if *p.BuyingRate > max {
			max = *p.BuyingRate
		}
	}

	bars := make([]Bar, 0, len(points))
	for _, p := range points {
		if p.BuyingRate == nil {
			continue
		}

		length := 0
		if max > min {
			length = int(math.Round(float64(width) * (*p.BuyingRate - min) / (max - min)))
		}

		bars = append(bars, Bar{
			Date:   p.Date,
			Rate:   *p.BuyingRate,
			Length: length,
		})
	}

	return bars
}
