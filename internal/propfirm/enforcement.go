package propfirm

import (
	"fmt"
	"time"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

// EnforceRules checks a signal against the full rule set and returns a
// human-readable rejection reason when a rule fails. Unlike the backtest
// risk gate, which drops signals silently, this surface is meant for callers
// that need to report why a trade was refused.
func EnforceRules(signal models.Signal, balance float64, tracker *DailyLossTracker, rules RuleSet, now time.Time) (bool, string) {
	if tracker != nil {
		if loss := tracker.LossFor(now); loss >= rules.MaxDailyLoss {
			return false, fmt.Sprintf("daily loss limit exceeded: %.2f >= %.2f", loss, rules.MaxDailyLoss)
		}
	}

	riskPct := 0.0
	if balance > 0 {
		riskPct = signal.RiskAmount / balance
	}
	if riskPct > rules.MaxRiskPerTrade {
		return false, fmt.Sprintf("risk per trade exceeded: %.3f > %.3f", riskPct, rules.MaxRiskPerTrade)
	}

	if signal.PositionSize > rules.MaxPositionSize {
		return false, fmt.Sprintf("position size too large: %.0f > %.0f", signal.PositionSize, rules.MaxPositionSize)
	}

	session := SessionAt(now)
	if !rules.SessionAllowed(session) {
		return false, fmt.Sprintf("trading outside allowed sessions: %s not in %v", session, rules.AllowedSessions)
	}

	if !rules.WeekendTrading && IsWeekend(now) {
		return false, "weekend trading not allowed"
	}

	return true, ""
}
