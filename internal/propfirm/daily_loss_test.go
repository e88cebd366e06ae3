package propfirm

import (
	"testing"
	"time"
)

var trackerBase = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func TestDailyLossTrackerAccumulates(t *testing.T) {
	tracker := NewDailyLossTracker()

	if got := tracker.RecordLoss(trackerBase, 100); got != 100 {
		t.Errorf("expected 100, got %f", got)
	}
	// Losses may arrive as negative PnL; absolute value is accumulated
	if got := tracker.RecordLoss(trackerBase.Add(2*time.Hour), -50); got != 150 {
		t.Errorf("expected 150, got %f", got)
	}

	// A different calendar day accumulates separately
	nextDay := trackerBase.Add(24 * time.Hour)
	if got := tracker.RecordLoss(nextDay, 30); got != 30 {
		t.Errorf("expected 30 on the next day, got %f", got)
	}
	if got := tracker.LossFor(trackerBase); got != 150 {
		t.Errorf("expected first day unchanged at 150, got %f", got)
	}
}

func TestDailyLossTrackerCheckViolation(t *testing.T) {
	tracker := NewDailyLossTracker()
	rules := RuleSet{MaxDailyLoss: 500, FirmName: "Test"}

	tracker.RecordLoss(trackerBase, 499)
	if v := tracker.CheckViolation(trackerBase, rules); v != nil {
		t.Errorf("expected no violation below the limit, got %+v", v)
	}

	tracker.RecordLoss(trackerBase, 1)
	v := tracker.CheckViolation(trackerBase, rules)
	if v == nil {
		t.Fatal("expected violation at the limit")
	}
	if v.Type != ViolationDailyLossLimit || v.Amount != 500 || v.Limit != 500 {
		t.Errorf("unexpected violation %+v", v)
	}

	// Each check past the limit emits its own violation
	tracker.RecordLoss(trackerBase, 100)
	again := tracker.CheckViolation(trackerBase, rules)
	if again == nil || again.Amount != 600 {
		t.Errorf("expected repeated violation with amount 600, got %+v", again)
	}
}

func TestDailyLossTrackerReset(t *testing.T) {
	tracker := NewDailyLossTracker()
	tracker.RecordLoss(trackerBase, 200)
	tracker.Reset()
	if got := tracker.LossFor(trackerBase); got != 0 {
		t.Errorf("expected 0 after reset, got %f", got)
	}
}

func TestStatusFor(t *testing.T) {
	tracker := NewDailyLossTracker()
	rules := RuleSet{MaxDailyLoss: 500, FirmName: "Test"}
	tracker.RecordLoss(trackerBase, 300)

	status := tracker.StatusFor(trackerBase, rules)
	if status.DailyLossUsed != 300 || status.DailyLossRemaining != 200 {
		t.Errorf("unexpected status %+v", status)
	}
	if status.CurrentSession != SessionLondon {
		t.Errorf("expected London session at 10:00 UTC, got %s", status.CurrentSession)
	}

	// Remaining headroom is clamped at zero once the limit is blown
	tracker.RecordLoss(trackerBase, 400)
	status = tracker.StatusFor(trackerBase, rules)
	if status.DailyLossRemaining != 0 {
		t.Errorf("expected remaining clamped to 0, got %f", status.DailyLossRemaining)
	}
}
