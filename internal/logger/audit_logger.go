// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for simulated trading
// activity.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogPositionOpened logs a simulated position opening.
func (al *AuditLogger) LogPositionOpened(positionID int, strategyName, instrument, action string, entryPrice, positionSize float64, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"position_id":   positionID,
		"strategy_name": strategyName,
		"instrument":    instrument,
		"action":        action,
		"entry_price":   entryPrice,
		"position_size": positionSize,
		"timestamp":     timestamp.Unix(),
	}).Info("Position opening recorded")
}

// LogPositionClosed logs a simulated position closure.
func (al *AuditLogger) LogPositionClosed(positionID int, exitReason string, exitPrice, pnl float64, durationMinutes float64) {
	al.WithFields(logrus.Fields{
		"position_id":      positionID,
		"exit_reason":      exitReason,
		"exit_price":       exitPrice,
		"pnl":              pnl,
		"duration_minutes": durationMinutes,
	}).Info("Position closure recorded")
}

// LogSignalRejected logs a risk-gate rejection.
func (al *AuditLogger) LogSignalRejected(strategyName, instrument, reason string, balance float64) {
	al.WithFields(logrus.Fields{
		"strategy_name": strategyName,
		"instrument":    instrument,
		"reason":        reason,
		"balance":       balance,
	}).Info("Trade signal rejected")
}

// LogRuleViolation logs a prop firm rule violation.
func (al *AuditLogger) LogRuleViolation(violationType string, amount, limit float64, date time.Time) {
	al.WithFields(logrus.Fields{
		"violation_type": violationType,
		"amount":         amount,
		"limit":          limit,
		"date":           date.Format("2006-01-02"),
	}).Warn("Rule violation recorded")
}
