// Package risk validates candidate signals against static limits and
// optional prop-firm rules before the engine opens positions.
package risk

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
	"github.com/WilliamPapier/MyPhytonEA/internal/propfirm"
)

// Defaults applied when a limit is left unset and no prop-firm rule set
// is active.
const (
	DefaultMaxRiskPerTrade  = 0.02
	DefaultMaxOpenPositions = 5
)

// Limits are the static gate limits, normally sourced from the risk
// section of the application config. Zero values fall back to the
// package defaults.
type Limits struct {
	MaxRiskPerTrade  float64
	MaxOpenPositions int
}

// DefaultLimits returns the static default limits.
func DefaultLimits() Limits {
	return Limits{
		MaxRiskPerTrade:  DefaultMaxRiskPerTrade,
		MaxOpenPositions: DefaultMaxOpenPositions,
	}
}

// Gate filters candidate signals. A rejected signal is routine filtering,
// never an error.
type Gate struct {
	maxRiskPerTrade  float64
	maxOpenPositions int
	logger           *logrus.Logger
}

// NewGate creates a gate with the given limits. Unset limit fields take
// the package defaults.
func NewGate(limits Limits, logger *logrus.Logger) *Gate {
	if logger == nil {
		logger = logrus.New()
	}
	if limits.MaxRiskPerTrade == 0 {
		limits.MaxRiskPerTrade = DefaultMaxRiskPerTrade
	}
	if limits.MaxOpenPositions == 0 {
		limits.MaxOpenPositions = DefaultMaxOpenPositions
	}
	return &Gate{
		maxRiskPerTrade:  limits.MaxRiskPerTrade,
		maxOpenPositions: limits.MaxOpenPositions,
		logger:           logger,
	}
}

// Validate reports whether a signal may open a position. All checks must
// pass: required fields, risk amount against the account balance, open
// position count, and, when a rule set is supplied, session and weekend
// restrictions.
func (g *Gate) Validate(signal models.Signal, balance float64, openPositions int, timestamp time.Time, rules *propfirm.RuleSet) bool {
	if err := signal.Validate(); err != nil {
		g.logger.WithError(err).Debug("Signal rejected: missing required fields")
		return false
	}

	maxRisk := g.maxRiskPerTrade
	maxOpen := g.maxOpenPositions
	if rules != nil {
		maxRisk = rules.MaxRiskPerTrade
		maxOpen = rules.MaxOpenPositions
	}

	if signal.RiskAmount > balance*maxRisk {
		g.logger.WithFields(logrus.Fields{
			"risk_amount": signal.RiskAmount,
			"balance":     balance,
			"max_risk":    maxRisk,
		}).Debug("Signal rejected: risk amount exceeds limit")
		return false
	}

	if openPositions >= maxOpen {
		g.logger.WithFields(logrus.Fields{
			"open_positions": openPositions,
			"max_open":       maxOpen,
		}).Debug("Signal rejected: max open positions reached")
		return false
	}

	if rules != nil {
		session := propfirm.SessionAt(timestamp)
		if !rules.SessionAllowed(session) {
			g.logger.WithFields(logrus.Fields{
				"session": session,
				"allowed": rules.AllowedSessions,
			}).Debug("Signal rejected: session not allowed")
			return false
		}
		if !rules.WeekendTrading && propfirm.IsWeekend(timestamp) {
			g.logger.WithField("timestamp", timestamp).Debug("Signal rejected: weekend trading not allowed")
			return false
		}
	}

	return true
}
