// Package backtest implements the deterministic bar-by-bar simulation
// engine, position lifecycle, and performance statistics.
package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WilliamPapier/MyPhytonEA/internal/logger"
	"github.com/WilliamPapier/MyPhytonEA/internal/metrics"
	"github.com/WilliamPapier/MyPhytonEA/internal/models"
	"github.com/WilliamPapier/MyPhytonEA/internal/propfirm"
	"github.com/WilliamPapier/MyPhytonEA/internal/risk"
	"github.com/WilliamPapier/MyPhytonEA/internal/strategy"
)

// Engine orchestrates backtest runs. It owns all simulation state for the
// duration of one Run call and resets it at the start of the next, so a
// single instance is reusable and deterministic across repeated runs.
type Engine struct {
	config      Config
	gate        *risk.Gate
	logger      *logrus.Logger
	audit       *logger.AuditLogger
	strategyLog *logger.StrategyLogger

	propFirmRules *propfirm.RuleSet

	balance    float64
	peakEquity float64
	ledger     *PositionLedger
	trades     []models.Trade
	equity     EquityCurve
	violations []propfirm.Violation
	dailyLoss  *propfirm.DailyLossTracker
}

// NewEngine creates a backtesting engine
func NewEngine(cfg Config, log *logrus.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
	}
	return &Engine{
		config:      cfg,
		gate:        risk.NewGate(cfg.Limits(), log),
		logger:      log,
		audit:       logger.NewAuditLogger(log),
		strategyLog: logger.NewStrategyLogger(log),
		ledger:      NewPositionLedger(),
	}, nil
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.config
}

// Logger returns the engine logger
func (e *Engine) Logger() *logrus.Logger {
	return e.logger
}

// EnablePropFirmSimulation activates prop-firm rule simulation using the
// named firm from the catalog.
func (e *Engine) EnablePropFirmSimulation(firmName string) error {
	rules, err := propfirm.RulesFor(firmName)
	if err != nil {
		return err
	}
	e.propFirmRules = &rules
	e.logger.WithField("firm", rules.FirmName).Info("Prop firm simulation enabled")
	return nil
}

// SetRuleSet activates prop-firm simulation with an explicit rule set.
func (e *Engine) SetRuleSet(rules propfirm.RuleSet) {
	e.propFirmRules = &rules
}

// Run replays the bar series through the strategy and produces the final
// report. Bars are filtered to [start, end] inclusive (zero times leave the
// range unbounded); an empty range is the only fatal condition. Per bar the
// order is fixed: exits, strategy evaluation, risk gating and opens, equity
// sample. Remaining positions are force-closed at the final bar's close.
func (e *Engine) Run(ctx context.Context, bars []models.Bar, strat strategy.Strategy, start, end time.Time) (*Result, error) {
	filtered := models.FilterBarsByRange(bars, start, end)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("backtest [%s, %s]: %w", start.Format("2006-01-02"), end.Format("2006-01-02"), models.ErrEmptyRange)
	}

	e.reset()

	e.logger.WithFields(logrus.Fields{
		"bars":  len(filtered),
		"first": filtered[0].Timestamp,
		"last":  filtered[len(filtered)-1].Timestamp,
	}).Info("Starting backtest")

	evalStarted := time.Now()
	signalsGenerated := 0

	for i, bar := range filtered {
		timestamp := bar.Timestamp

		for _, trade := range e.ledger.CheckExits(bar, timestamp) {
			e.applyClosure(trade)
		}

		signals, err := strat.Evaluate(ctx, filtered[:i+1])
		if err != nil {
			// Recoverable: skip signal generation for this bar only.
			e.logger.WithError(err).WithField("timestamp", timestamp).Error("Strategy evaluation failed, skipping bar")
			signals = nil
		}
		signalsGenerated += len(signals)

		for _, signal := range signals {
			if !e.gate.Validate(signal, e.balance, e.ledger.OpenCount(), timestamp, e.propFirmRules) {
				metrics.RecordSignalRejected()
				e.audit.LogSignalRejected(strat.Name(), signal.Instrument, "risk gate", e.balance)
				continue
			}
			position := e.ledger.Open(signal, timestamp, len(e.trades))
			e.audit.LogPositionOpened(position.ID, strat.Name(), position.Instrument,
				string(position.Action), position.EntryPrice, position.PositionSize, timestamp)
		}

		e.sampleEquity(bar)
	}

	e.strategyLog.LogStrategyEvaluation(strat.Name(), len(filtered), signalsGenerated,
		float64(time.Since(evalStarted).Microseconds())/1000.0)

	finalBar := filtered[len(filtered)-1]
	for _, trade := range e.ledger.ForceCloseAll(finalBar.Close, finalBar.Timestamp) {
		e.applyClosure(trade)
	}

	result := ComputeResult(e.trades, e.equity, e.config.InitialBalance, e.balance, filtered, e.violations, e.config.RiskFreeRate)

	e.logger.WithFields(logrus.Fields{
		"trades":   result.TotalTrades,
		"win_rate": result.WinRate,
		"pnl":      result.TotalPnL,
	}).Info("Backtest completed")

	return result, nil
}

// reset clears all per-run state so repeated runs start identically.
func (e *Engine) reset() {
	e.balance = e.config.InitialBalance
	e.peakEquity = 0
	e.ledger.Reset()
	e.trades = []models.Trade{}
	e.equity = EquityCurve{}
	e.violations = []propfirm.Violation{}
	e.dailyLoss = propfirm.NewDailyLossTracker()
}

// applyClosure settles a closed trade: the balance moves by exactly the
// trade's PnL, once, and the trade is appended to the immutable record.
// Losing trades feed the daily-loss tracker when prop-firm simulation is on.
func (e *Engine) applyClosure(trade models.Trade) {
	e.balance += trade.PnL
	e.trades = append(e.trades, trade)
	metrics.RecordTradeClosed(string(trade.ExitReason))
	e.audit.LogPositionClosed(trade.ID, string(trade.ExitReason), trade.ExitPrice, trade.PnL, trade.DurationMinutes)

	if e.propFirmRules == nil || trade.PnL >= 0 {
		return
	}

	e.dailyLoss.RecordLoss(trade.ExitTime, trade.PnL)
	if violation := e.dailyLoss.CheckViolation(trade.ExitTime, *e.propFirmRules); violation != nil {
		e.violations = append(e.violations, *violation)
		metrics.RecordViolation(violation.Type)
		e.audit.LogRuleViolation(violation.Type, violation.Amount, violation.Limit, violation.Date)
	}
}

// sampleEquity appends the per-bar equity sample. The drawdown is measured
// against the running equity peak, tracked incrementally.
func (e *Engine) sampleEquity(bar models.Bar) {
	equity := e.balance
	for _, position := range e.ledger.OpenPositions() {
		equity += position.UnrealizedPnL(bar.Close)
	}

	if equity > e.peakEquity {
		e.peakEquity = equity
	}
	drawdown := e.peakEquity - equity
	if drawdown < 0 {
		drawdown = 0
	}

	e.equity = append(e.equity, EquitySample{
		Timestamp: bar.Timestamp,
		Equity:    equity,
		Balance:   e.balance,
		Drawdown:  drawdown,
	})

	metrics.CurrentBalance.Set(e.balance)
	metrics.OpenPositions.Set(float64(e.ledger.OpenCount()))
}
