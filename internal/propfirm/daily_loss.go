package propfirm

import "time"

// Violation records a breached daily-loss limit. Violations are observational
// only and never block further trading within a run.
type Violation struct {
	Date   time.Time `json:"date"`
	Type   string    `json:"type"`
	Amount float64   `json:"amount"`
	Limit  float64   `json:"limit"`
}

// ViolationDailyLossLimit identifies daily-loss-limit violations.
const ViolationDailyLossLimit = "daily_loss_limit"

// DailyLossTracker accumulates realized losses per calendar day for
// daily-loss-limit monitoring. Losses are keyed by the trade's close date.
type DailyLossTracker struct {
	losses map[time.Time]float64
}

// NewDailyLossTracker creates an empty tracker
func NewDailyLossTracker() *DailyLossTracker {
	return &DailyLossTracker{losses: make(map[time.Time]float64)}
}

// RecordLoss adds the absolute value of a losing trade's PnL to the day's
// total and returns the accumulated loss for that day.
func (t *DailyLossTracker) RecordLoss(date time.Time, amount float64) float64 {
	day := truncateToDay(date)
	if amount < 0 {
		amount = -amount
	}
	t.losses[day] += amount
	return t.losses[day]
}

// LossFor returns the accumulated loss for a calendar day.
func (t *DailyLossTracker) LossFor(date time.Time) float64 {
	return t.losses[truncateToDay(date)]
}

// CheckViolation emits a Violation when the day's accumulated loss has
// reached or exceeded the rule set's daily limit. Repeated crossings on the
// same day each emit their own Violation; there is no per-day suppression.
func (t *DailyLossTracker) CheckViolation(date time.Time, rules RuleSet) *Violation {
	loss := t.LossFor(date)
	if loss < rules.MaxDailyLoss {
		return nil
	}
	return &Violation{
		Date:   date,
		Type:   ViolationDailyLossLimit,
		Amount: loss,
		Limit:  rules.MaxDailyLoss,
	}
}

// Reset clears all accumulated daily losses.
func (t *DailyLossTracker) Reset() {
	t.losses = make(map[time.Time]float64)
}

// Status summarizes daily-loss usage for a date under a rule set.
type Status struct {
	FirmName           string  `json:"firm_name"`
	DailyLossUsed      float64 `json:"daily_loss_used"`
	DailyLossLimit     float64 `json:"daily_loss_limit"`
	DailyLossRemaining float64 `json:"daily_loss_remaining"`
	CurrentSession     string  `json:"current_session"`
}

// StatusFor reports the daily-loss headroom for a date.
func (t *DailyLossTracker) StatusFor(date time.Time, rules RuleSet) Status {
	used := t.LossFor(date)
	remaining := rules.MaxDailyLoss - used
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		FirmName:           rules.FirmName,
		DailyLossUsed:      used,
		DailyLossLimit:     rules.MaxDailyLoss,
		DailyLossRemaining: remaining,
		CurrentSession:     SessionAt(date),
	}
}

func truncateToDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
