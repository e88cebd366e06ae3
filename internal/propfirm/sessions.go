package propfirm

import "time"

// Trading session names
const (
	SessionAsian   = "Asian"
	SessionLondon  = "London"
	SessionNewYork = "New York"
)

// SessionForHour buckets a UTC hour into a trading session:
// Asian [0,7), London [7,15), New York [15,22), Asian otherwise.
func SessionForHour(hour int) string {
	switch {
	case hour >= 0 && hour < 7:
		return SessionAsian
	case hour >= 7 && hour < 15:
		return SessionLondon
	case hour >= 15 && hour < 22:
		return SessionNewYork
	default:
		return SessionAsian
	}
}

// SessionAt returns the trading session active at the given time, in UTC.
func SessionAt(t time.Time) string {
	return SessionForHour(t.UTC().Hour())
}

// IsWeekend reports whether the given time falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	weekday := t.UTC().Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}
