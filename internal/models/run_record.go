package models

import (
	"time"

	"github.com/google/uuid"
)

// BacktestRunRecord is the persisted form of a completed backtest run:
// headline statistics in queryable columns plus the full serialized report.
type BacktestRunRecord struct {
	ID             uuid.UUID `json:"id"`
	StrategyName   string    `json:"strategy_name"`
	RunDate        time.Time `json:"run_date"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	InitialBalance float64   `json:"initial_balance"`
	FinalBalance   float64   `json:"final_balance"`
	TotalTrades    int       `json:"total_trades"`
	WinRate        float64   `json:"win_rate"`
	TotalPnL       float64   `json:"total_pnl"`
	ProfitFactor   float64   `json:"profit_factor"`
	SharpeRatio    float64   `json:"sharpe_ratio"`
	MaxDrawdown    float64   `json:"max_drawdown"`
	PropFirm       string    `json:"prop_firm"`
	Violations     int       `json:"violations"`
	FullResults    []byte    `json:"full_results"`
	CreatedAt      time.Time `json:"created_at"`
}
