package propfirm

import (
	"testing"
	"time"
)

func TestSessionForHourBoundaries(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, SessionAsian},
		{6, SessionAsian},
		{7, SessionLondon},
		{14, SessionLondon},
		{15, SessionNewYork},
		{21, SessionNewYork},
		{22, SessionAsian},
		{23, SessionAsian},
	}
	for _, tc := range cases {
		if got := SessionForHour(tc.hour); got != tc.want {
			t.Errorf("hour %d: expected %s, got %s", tc.hour, tc.want, got)
		}
	}
}

func TestSessionAtUsesUTC(t *testing.T) {
	// 09:00 in UTC+5 is 04:00 UTC, still the Asian session
	loc := time.FixedZone("UTC+5", 5*3600)
	at := time.Date(2024, 3, 4, 9, 0, 0, 0, loc)
	if got := SessionAt(at); got != SessionAsian {
		t.Errorf("expected Asian for 04:00 UTC, got %s", got)
	}
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	if !IsWeekend(saturday) || !IsWeekend(sunday) {
		t.Error("expected Saturday and Sunday to be weekend")
	}
	if IsWeekend(monday) {
		t.Error("expected Monday to be a weekday")
	}
}
