//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WilliamPapier/MyPhytonEA/internal/backtest"
	"github.com/WilliamPapier/MyPhytonEA/internal/datasource"
	"github.com/WilliamPapier/MyPhytonEA/internal/models"
	"github.com/WilliamPapier/MyPhytonEA/internal/strategy"
	"github.com/WilliamPapier/MyPhytonEA/test/helpers"
)

// Monday 2024-03-04 00:00 UTC; the intraday path stays inside weekday sessions.
var e2eStart = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

// winningCrossBars produces 20 flat hourly closes at 1.10, a jump to 1.11
// that forces a bullish MA5/MA20 cross, and a final close above the 1%
// take-profit target.
func winningCrossBars() []models.Bar {
	closes := helpers.FlatThenStep(20, 1.10, 1.11, 1.1250)
	return helpers.BarsFromCloses(e2eStart, time.Hour, closes)
}

func runPipeline(t *testing.T, csvPath, outputDir string) *backtest.Result {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	source := datasource.NewCSVSource(csvPath, time.Minute, logger)
	ctx := helpers.TestContext(t, 30*time.Second)

	bars, err := source.FetchBars(ctx, "EURUSD", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, bars, 22)

	cfg := backtest.Config{InitialBalance: 100000, RiskFreeRate: 0.02}
	engine, err := backtest.NewEngine(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, engine.EnablePropFirmSimulation("ftmo"))

	result, err := engine.Run(ctx, bars, strategy.NewMACrossStrategy(), time.Time{}, time.Time{})
	require.NoError(t, err)

	if outputDir != "" {
		require.NoError(t, backtest.WriteJSONReport(result, filepath.Join(outputDir, "result.json")))
		require.NoError(t, backtest.GenerateCSVExport(result, filepath.Join(outputDir, "summary.csv")))
	}
	return result
}

// TestCSVToReportPipeline drives the full path: CSV file through the data
// source, the crossover strategy, the engine under FTMO rules, and the
// report writers.
func TestCSVToReportPipeline(t *testing.T) {
	helpers.SkipIfShort(t)

	dir := t.TempDir()
	csvPath := helpers.WriteBarCSV(t, dir, "eurusd.csv", winningCrossBars())
	outputDir := filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(outputDir, 0o755))

	result := runPipeline(t, csvPath, outputDir)

	require.Equal(t, 1, result.TotalTrades)
	assert.Equal(t, 1, result.WinningTrades)
	assert.Equal(t, 100.0, result.WinRate)
	assert.True(t, math.IsInf(result.ProfitFactor, 1), "no losing trades should give +Inf profit factor")

	require.Len(t, result.Trades, 1)
	trade := result.Trades[0]
	assert.Equal(t, models.ActionBuy, trade.Action)
	assert.Equal(t, models.ExitTakeProfit, trade.ExitReason)
	assert.InDelta(t, 1.11, trade.EntryPrice, 1e-9)
	assert.InDelta(t, 1.1250, trade.ExitPrice, 1e-9)
	assert.InDelta(t, 0.015, trade.PnL, 1e-9)
	assert.InDelta(t, 100000.015, result.FinalBalance, 1e-9)
	assert.Empty(t, result.Violations)

	// The JSON report round-trips and carries null for the infinite ratio
	data, err := os.ReadFile(filepath.Join(outputDir, "result.json"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["profit_factor"])
	assert.EqualValues(t, 1, decoded["total_trades"])

	summary, err := os.ReadFile(filepath.Join(outputDir, "summary.csv"))
	require.NoError(t, err)
	assert.NotEmpty(t, summary)
}

// TestPipelineDeterminism replays the same file twice and requires
// byte-identical serialized results.
func TestPipelineDeterminism(t *testing.T) {
	helpers.SkipIfShort(t)

	dir := t.TempDir()
	csvPath := helpers.WriteBarCSV(t, dir, "eurusd.csv", winningCrossBars())

	first := runPipeline(t, csvPath, "")
	second := runPipeline(t, csvPath, "")

	firstJSON, err := first.ToJSON()
	require.NoError(t, err)
	secondJSON, err := second.ToJSON()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(firstJSON, secondJSON), "repeated runs must serialize identically")
}
