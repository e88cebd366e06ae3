// Package propfirm models funded-account trading constraints and tracks
// rule violations during simulation.
package propfirm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

// RuleSet is an immutable bundle of trading constraints for one firm,
// supplied once per backtest run.
type RuleSet struct {
	MaxDailyLoss          float64  `json:"max_daily_loss"`
	MaxWeeklyLoss         float64  `json:"max_weekly_loss"`
	MaxMonthlyLoss        float64  `json:"max_monthly_loss"`
	TrailingDrawdownLimit float64  `json:"trailing_drawdown_limit"`
	MaxRiskPerTrade       float64  `json:"max_risk_per_trade"`
	MaxPositionSize       float64  `json:"max_position_size"`
	AllowedSessions       []string `json:"allowed_sessions"`
	NewsAvoidanceMinutes  int      `json:"news_avoidance_minutes"`
	MaxOpenPositions      int      `json:"max_open_positions"`
	WeekendTrading        bool     `json:"weekend_trading"`
	FirmName              string   `json:"firm_name"`
}

// SessionAllowed reports whether the named session is tradeable under the rules
func (r RuleSet) SessionAllowed(session string) bool {
	for _, allowed := range r.AllowedSessions {
		if allowed == session {
			return true
		}
	}
	return false
}

// catalog holds the predefined rule sets keyed by normalized firm name.
var catalog = map[string]RuleSet{
	"ftmo": {
		MaxDailyLoss:          500.0,
		MaxWeeklyLoss:         2000.0,
		MaxMonthlyLoss:        5000.0,
		TrailingDrawdownLimit: 0.05,
		MaxRiskPerTrade:       0.01,
		MaxPositionSize:       200000,
		AllowedSessions:       []string{SessionLondon, SessionNewYork},
		NewsAvoidanceMinutes:  30,
		MaxOpenPositions:      3,
		WeekendTrading:        false,
		FirmName:              "FTMO",
	},
	"my_forex_funds": {
		MaxDailyLoss:          400.0,
		MaxWeeklyLoss:         1600.0,
		MaxMonthlyLoss:        4000.0,
		TrailingDrawdownLimit: 0.04,
		MaxRiskPerTrade:       0.008,
		MaxPositionSize:       150000,
		AllowedSessions:       []string{SessionLondon, SessionNewYork, SessionAsian},
		NewsAvoidanceMinutes:  20,
		MaxOpenPositions:      5,
		WeekendTrading:        false,
		FirmName:              "MyForexFunds",
	},
	"apex_trader": {
		MaxDailyLoss:          600.0,
		MaxWeeklyLoss:         2400.0,
		MaxMonthlyLoss:        6000.0,
		TrailingDrawdownLimit: 0.06,
		MaxRiskPerTrade:       0.012,
		MaxPositionSize:       300000,
		AllowedSessions:       []string{SessionLondon, SessionNewYork},
		NewsAvoidanceMinutes:  25,
		MaxOpenPositions:      4,
		WeekendTrading:        false,
		FirmName:              "Apex Trader",
	},
	"funded_trader_plus": {
		MaxDailyLoss:          300.0,
		MaxWeeklyLoss:         1200.0,
		MaxMonthlyLoss:        3000.0,
		TrailingDrawdownLimit: 0.03,
		MaxRiskPerTrade:       0.006,
		MaxPositionSize:       100000,
		AllowedSessions:       []string{SessionLondon, SessionNewYork},
		NewsAvoidanceMinutes:  15,
		MaxOpenPositions:      2,
		WeekendTrading:        false,
		FirmName:              "Funded Trader Plus",
	},
}

// RulesFor returns the rule set for a firm name. Lookup is case-insensitive.
func RulesFor(firmName string) (RuleSet, error) {
	rules, ok := catalog[strings.ToLower(firmName)]
	if !ok {
		return RuleSet{}, fmt.Errorf("%w: %s", models.ErrUnknownPropFirm, firmName)
	}
	return rules, nil
}

// FirmNames lists the firms available in the catalog, sorted by name.
func FirmNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
