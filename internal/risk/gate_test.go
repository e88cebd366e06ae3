package risk

import (
	"testing"
	"time"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
	"github.com/WilliamPapier/MyPhytonEA/internal/propfirm"
)

// Monday 10:00 UTC, London session
var gateTime = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func gateSignal() models.Signal {
	return models.Signal{
		Action:       models.ActionBuy,
		Instrument:   "EURUSD",
		EntryPrice:   1.1,
		StopLoss:     1.09,
		TakeProfit:   1.12,
		PositionSize: 100000,
		RiskAmount:   100,
	}
}

func TestGateAcceptsValidSignal(t *testing.T) {
	gate := NewGate(DefaultLimits(), nil)
	if !gate.Validate(gateSignal(), 10000, 0, gateTime, nil) {
		t.Error("expected signal accepted")
	}
}

func TestGateRejectsInvalidSignal(t *testing.T) {
	gate := NewGate(DefaultLimits(), nil)
	signal := gateSignal()
	signal.StopLoss = 0
	if gate.Validate(signal, 10000, 0, gateTime, nil) {
		t.Error("expected rejection for missing stop loss")
	}
}

func TestGateRejectsExcessiveRisk(t *testing.T) {
	gate := NewGate(DefaultLimits(), nil)
	signal := gateSignal()
	signal.RiskAmount = 300 // 3% of 10000 against the 2% default

	if gate.Validate(signal, 10000, 0, gateTime, nil) {
		t.Error("expected rejection for excessive risk")
	}
}

func TestGateRejectsAtMaxOpenPositions(t *testing.T) {
	gate := NewGate(DefaultLimits(), nil)
	if gate.Validate(gateSignal(), 10000, DefaultMaxOpenPositions, gateTime, nil) {
		t.Error("expected rejection at max open positions")
	}
	if !gate.Validate(gateSignal(), 10000, DefaultMaxOpenPositions-1, gateTime, nil) {
		t.Error("expected acceptance below max open positions")
	}
}

func TestGateHonorsConfiguredLimits(t *testing.T) {
	gate := NewGate(Limits{MaxRiskPerTrade: 0.005, MaxOpenPositions: 2}, nil)

	// 1% risk passes the 2% default but not the configured 0.5% cap.
	if gate.Validate(gateSignal(), 10000, 0, gateTime, nil) {
		t.Error("expected rejection under configured risk cap")
	}

	signal := gateSignal()
	signal.RiskAmount = 40
	if !gate.Validate(signal, 10000, 1, gateTime, nil) {
		t.Error("expected acceptance below configured max open positions")
	}
	if gate.Validate(signal, 10000, 2, gateTime, nil) {
		t.Error("expected rejection at configured max open positions")
	}
}

func TestGateZeroLimitsFallBackToDefaults(t *testing.T) {
	gate := NewGate(Limits{}, nil)

	if !gate.Validate(gateSignal(), 10000, 0, gateTime, nil) {
		t.Error("expected default risk cap to accept 1% risk")
	}
	if gate.Validate(gateSignal(), 10000, DefaultMaxOpenPositions, gateTime, nil) {
		t.Error("expected default max open positions to apply")
	}
}

func TestGateAppliesRuleSetLimits(t *testing.T) {
	gate := NewGate(DefaultLimits(), nil)
	rules := propfirm.RuleSet{
		MaxRiskPerTrade:  0.005,
		MaxOpenPositions: 1,
		AllowedSessions:  []string{propfirm.SessionLondon},
	}

	// 1% risk passes the static default but not the firm's 0.5% cap
	if gate.Validate(gateSignal(), 10000, 0, gateTime, &rules) {
		t.Error("expected rejection under tighter firm risk cap")
	}

	signal := gateSignal()
	signal.RiskAmount = 40
	if !gate.Validate(signal, 10000, 0, gateTime, &rules) {
		t.Error("expected acceptance within firm limits")
	}
	if gate.Validate(signal, 10000, 1, gateTime, &rules) {
		t.Error("expected rejection at firm max open positions")
	}
}

func TestGateRejectsDisallowedSession(t *testing.T) {
	gate := NewGate(DefaultLimits(), nil)
	rules := propfirm.RuleSet{
		MaxRiskPerTrade:  0.02,
		MaxOpenPositions: 5,
		AllowedSessions:  []string{propfirm.SessionNewYork},
	}

	signal := gateSignal()
	signal.RiskAmount = 40
	if gate.Validate(signal, 10000, 0, gateTime, &rules) {
		t.Error("expected rejection outside allowed sessions")
	}

	nyTime := time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC)
	if !gate.Validate(signal, 10000, 0, nyTime, &rules) {
		t.Error("expected acceptance in New York session")
	}
}

func TestGateRejectsWeekend(t *testing.T) {
	gate := NewGate(DefaultLimits(), nil)
	rules := propfirm.RuleSet{
		MaxRiskPerTrade:  0.02,
		MaxOpenPositions: 5,
		AllowedSessions:  []string{propfirm.SessionLondon},
		WeekendTrading:   false,
	}

	saturday := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	signal := gateSignal()
	signal.RiskAmount = 40
	if gate.Validate(signal, 10000, 0, saturday, &rules) {
		t.Error("expected rejection on weekend")
	}

	rules.WeekendTrading = true
	if !gate.Validate(signal, 10000, 0, saturday, &rules) {
		t.Error("expected acceptance with weekend trading enabled")
	}
}
