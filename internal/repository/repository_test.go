package repository

import (
	"math"
	"testing"

	"github.com/WilliamPapier/MyPhytonEA/internal/backtest"
)

const skipIntegrationMsg = "Integration test - requires database setup"

// TestNewRunRecordSanitizesProfitFactor tests that an infinite profit factor
// is stored as zero in the queryable column
func TestNewRunRecordSanitizesProfitFactor(t *testing.T) {
	result := &backtest.Result{
		TotalTrades:    3,
		WinRate:        100,
		TotalPnL:       150,
		ProfitFactor:   math.Inf(1),
		InitialBalance: 10000,
		FinalBalance:   10150,
		StartDate:      "2024-01-01",
		EndDate:        "2024-03-01",
	}

	record, err := NewRunRecord(result, "ma_cross", "ftmo")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if record.ProfitFactor != 0 {
		t.Errorf("expected profit factor 0 for infinite input, got %f", record.ProfitFactor)
	}
	if record.StrategyName != "ma_cross" {
		t.Errorf("expected strategy name ma_cross, got %s", record.StrategyName)
	}
	if record.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated run ID")
	}
	if len(record.FullResults) == 0 {
		t.Error("expected serialized full results")
	}
}

// TestNewRunRecordCopiesStatistics tests field mapping from the result
func TestNewRunRecordCopiesStatistics(t *testing.T) {
	result := &backtest.Result{
		TotalTrades:    10,
		WinRate:        60,
		TotalPnL:       -42.5,
		ProfitFactor:   0.8,
		SharpeRatio:    -0.3,
		MaxDrawdown:    120.0,
		InitialBalance: 10000,
		FinalBalance:   9957.5,
		StartDate:      "2024-01-01",
		EndDate:        "2024-03-01",
	}

	record, err := NewRunRecord(result, "ma_cross", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if record.TotalTrades != 10 || record.WinRate != 60 || record.TotalPnL != -42.5 {
		t.Errorf("unexpected statistics in record: %+v", record)
	}
	if record.ProfitFactor != 0.8 {
		t.Errorf("expected profit factor 0.8, got %f", record.ProfitFactor)
	}
	if record.StartDate != "2024-01-01" || record.EndDate != "2024-03-01" {
		t.Errorf("unexpected dates in record: %+v", record)
	}
}

// TestBacktestRunRepositoryRoundTrip exercises the Postgres repository
func TestBacktestRunRepositoryRoundTrip(t *testing.T) {
	// db := database.SetupTestDB(t)
	// defer database.TeardownTestDB(t, db)

	// repos := NewRepositories(db)

	// record, err := NewRunRecord(&backtest.Result{...}, "ma_cross", "ftmo")
	// if err != nil {
	// 	t.Fatalf("failed to build record: %v", err)
	// }

	// ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	// defer cancel()

	// if err := repos.BacktestRuns.Save(ctx, record); err != nil {
	// 	t.Fatalf("failed to save run: %v", err)
	// }

	// retrieved, err := repos.BacktestRuns.GetByID(ctx, record.ID)
	// if err != nil {
	// 	t.Fatalf("failed to retrieve run: %v", err)
	// }
	// if retrieved.StrategyName != record.StrategyName {
	// 	t.Errorf("expected strategy %s, got %s", record.StrategyName, retrieved.StrategyName)
	// }
	t.Skip(skipIntegrationMsg)
}
