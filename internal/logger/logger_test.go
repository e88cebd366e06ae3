package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("warn", "development")
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("nonsense", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerFormatterByEnvironment(t *testing.T) {
	log := NewLogger("info", "production")
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewLogger("info", "development")
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestStrategyLoggerEvaluation(t *testing.T) {
	log, buf := setupTestLogger()
	strategyLogger := NewStrategyLogger(log)

	strategyLogger.LogStrategyEvaluation("ma_cross", 500, 2, 12.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "ma_cross", logEntry["strategy_name"])
	assert.Equal(t, "strategy", logEntry["component"])
	assert.Equal(t, float64(500), logEntry["bars_evaluated"])
}

func TestStrategyLoggerSignal(t *testing.T) {
	log, buf := setupTestLogger()
	strategyLogger := NewStrategyLogger(log)

	strategyLogger.LogSignal("ma_cross", "buy", "EURUSD", 1.1000, 1.0945, 1.1110, 100000, 550)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "buy", logEntry["action"])
	assert.Equal(t, "EURUSD", logEntry["instrument"])
	assert.Equal(t, 1.1000, logEntry["entry_price"])
}

func TestAuditLoggerPositionLifecycle(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	opened := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	auditLogger.LogPositionOpened(1, "ma_cross", "EURUSD", "buy", 1.1000, 100000, opened)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, float64(1), logEntry["position_id"])

	buf.Reset()
	auditLogger.LogPositionClosed(1, "take_profit", 1.1110, 110.0, 180)

	logEntry = parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "take_profit", logEntry["exit_reason"])
	assert.Equal(t, 110.0, logEntry["pnl"])
}

func TestAuditLoggerRuleViolation(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	date := time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC)
	auditLogger.LogRuleViolation("daily_loss_limit", 612.5, 500.0, date)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "daily_loss_limit", logEntry["violation_type"])
	assert.Equal(t, "2024-03-01", logEntry["date"])
	assert.Equal(t, "warning", logEntry["level"])
}
