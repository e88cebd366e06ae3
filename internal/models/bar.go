// Package models defines the core data types shared across the backtester.
package models

import (
	"fmt"
	"time"
)

// Bar represents a single OHLCV observation at a fixed timestamp.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// ValidateBars checks that a bar series has strictly increasing timestamps.
func ValidateBars(bars []Bar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Timestamp.After(bars[i-1].Timestamp) {
			return fmt.Errorf("%w: bar %d at %s does not follow bar %d at %s",
				ErrUnorderedBars, i, bars[i].Timestamp.Format(time.RFC3339), i-1, bars[i-1].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

// FilterBarsByRange returns the bars whose timestamps fall within
// [start, end] inclusive. A zero start or end leaves that side unbounded.
func FilterBarsByRange(bars []Bar, start, end time.Time) []Bar {
	filtered := make([]Bar, 0, len(bars))
	for _, bar := range bars {
		if !start.IsZero() && bar.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && bar.Timestamp.After(end) {
			continue
		}
		filtered = append(filtered, bar)
	}
	return filtered
}
