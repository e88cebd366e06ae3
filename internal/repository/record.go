package repository

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/WilliamPapier/MyPhytonEA/internal/backtest"
	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

// NewRunRecord converts a backtest result into its persisted form. A
// profit factor of +Inf (no losing trades) has no SQL representation, so it
// is stored as 0 in the column; the exact value survives in full_results.
func NewRunRecord(result *backtest.Result, strategyName, propFirm string) (*models.BacktestRunRecord, error) {
	fullResults, err := result.ToJSON()
	if err != nil {
		return nil, err
	}

	profitFactor := result.ProfitFactor
	if math.IsInf(profitFactor, 0) || math.IsNaN(profitFactor) {
		profitFactor = 0
	}

	now := time.Now().UTC()
	return &models.BacktestRunRecord{
		ID:             uuid.New(),
		StrategyName:   strategyName,
		RunDate:        now,
		StartDate:      result.StartDate,
		EndDate:        result.EndDate,
		InitialBalance: result.InitialBalance,
		FinalBalance:   result.FinalBalance,
		TotalTrades:    result.TotalTrades,
		WinRate:        result.WinRate,
		TotalPnL:       result.TotalPnL,
		ProfitFactor:   profitFactor,
		SharpeRatio:    result.SharpeRatio,
		MaxDrawdown:    result.MaxDrawdown,
		PropFirm:       propFirm,
		Violations:     len(result.Violations),
		FullResults:    fullResults,
		CreatedAt:      now,
	}, nil
}
