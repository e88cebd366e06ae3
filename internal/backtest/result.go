package backtest

import (
	"encoding/json"
	"math"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
	"github.com/WilliamPapier/MyPhytonEA/internal/propfirm"
)

// DailyPnL is the realized profit and loss of one calendar day (UTC),
// keyed by exit date.
type DailyPnL struct {
	Date string  `json:"date"`
	PnL  float64 `json:"pnl"`
}

// DrawdownPeriod describes one peak-to-recovery stretch of the equity curve.
// Indices refer to positions in the equity curve; a drawdown still open at
// the end of the run is not reported.
type DrawdownPeriod struct {
	StartIndex   int     `json:"start_index"`
	EndIndex     int     `json:"end_index"`
	DurationBars int     `json:"duration_bars"`
	MaxDrawdown  float64 `json:"max_drawdown"`
}

// Result is the complete backtest report: aggregate statistics plus the full
// trade list, equity curve, and rule violations.
type Result struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`

	TotalPnL     float64 `json:"total_pnl"`
	GrossProfit  float64 `json:"gross_profit"`
	GrossLoss    float64 `json:"gross_loss"`
	ProfitFactor float64 `json:"profit_factor"`

	SharpeRatio        float64 `json:"sharpe_ratio"`
	SortinoRatio       float64 `json:"sortino_ratio"`
	MaxDrawdown        float64 `json:"max_drawdown"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent"`
	CalmarRatio        float64 `json:"calmar_ratio"`
	RecoveryFactor     float64 `json:"recovery_factor"`

	AverageWin  float64 `json:"average_win"`
	AverageLoss float64 `json:"average_loss"`
	LargestWin  float64 `json:"largest_win"`
	LargestLoss float64 `json:"largest_loss"`
	Expectancy  float64 `json:"expectancy"`

	ConsecutiveWins   int `json:"consecutive_wins"`
	ConsecutiveLosses int `json:"consecutive_losses"`

	TradingDays    int     `json:"trading_days"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	InitialBalance float64 `json:"initial_balance"`
	FinalBalance   float64 `json:"final_balance"`

	Trades          []models.Trade       `json:"trades"`
	EquityCurve     EquityCurve          `json:"equity_curve"`
	DailyPnL        []DailyPnL           `json:"daily_pnl"`
	DrawdownPeriods []DrawdownPeriod     `json:"drawdown_periods"`
	MonthlyReturns  map[string]float64   `json:"monthly_returns"`
	Violations      []propfirm.Violation `json:"violations"`
}

// Summary returns the headline statistics grouped for quick inspection.
func (r *Result) Summary() map[string]interface{} {
	return map[string]interface{}{
		"total_trades":  r.TotalTrades,
		"win_rate":      r.WinRate,
		"total_pnl":     r.TotalPnL,
		"profit_factor": sanitizeFloat(r.ProfitFactor),
		"sharpe_ratio":  r.SharpeRatio,
		"max_drawdown":  r.MaxDrawdown,
		"expectancy":    r.Expectancy,
		"final_balance": r.FinalBalance,
	}
}

// ToJSON serializes the result. A profit factor with no losing trades is
// +Inf internally, which JSON cannot carry, so non-finite values are mapped
// to null via a shadow field.
func (r *Result) ToJSON() ([]byte, error) {
	type alias Result
	shadow := struct {
		*alias
		ProfitFactor interface{} `json:"profit_factor"`
	}{
		alias:        (*alias)(r),
		ProfitFactor: jsonNumber(r.ProfitFactor),
	}
	return json.MarshalIndent(shadow, "", "  ")
}

func sanitizeFloat(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

func jsonNumber(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return v
}
