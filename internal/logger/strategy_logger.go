// Package logger provides strategy-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// StrategyLogger provides dedicated logging for strategy operations.
type StrategyLogger struct {
	*logrus.Entry
}

// NewStrategyLogger creates a new strategy logger.
func NewStrategyLogger(baseLogger *logrus.Logger) *StrategyLogger {
	return &StrategyLogger{
		Entry: baseLogger.WithField("component", "strategy"),
	}
}

// LogStrategyEvaluation logs a strategy evaluation event.
func (sl *StrategyLogger) LogStrategyEvaluation(strategyName string, barsEvaluated, signalsGenerated int, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"strategy_name":          strategyName,
		"bars_evaluated":         barsEvaluated,
		"signals_generated":      signalsGenerated,
		"evaluation_duration_ms": durationMs,
	}).Info("Strategy evaluation completed")
}

// LogSignal logs an emitted trade signal.
func (sl *StrategyLogger) LogSignal(strategyName, action, instrument string, entryPrice, stopLoss, takeProfit, positionSize, riskAmount float64) {
	sl.WithFields(logrus.Fields{
		"strategy_name": strategyName,
		"action":        action,
		"instrument":    instrument,
		"entry_price":   entryPrice,
		"stop_loss":     stopLoss,
		"take_profit":   takeProfit,
		"position_size": positionSize,
		"risk_amount":   riskAmount,
	}).Info("Trade signal generated")
}

// LogStrategyDrawdown logs drawdown events.
func (sl *StrategyLogger) LogStrategyDrawdown(strategyName string, drawdownPercent, peakEquity, currentEquity float64) {
	sl.WithFields(logrus.Fields{
		"strategy_name":    strategyName,
		"drawdown_percent": drawdownPercent,
		"peak_equity":      peakEquity,
		"current_equity":   currentEquity,
	}).Warn("Strategy drawdown threshold exceeded")
}
