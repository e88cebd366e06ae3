package backtest

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats the result for terminal output
func GenerateConsoleReport(result *Result) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Period: %s to %s (%d bars)\n", result.StartDate, result.EndDate, result.TradingDays))
	builder.WriteString(fmt.Sprintf("Initial Balance: %.2f\n", result.InitialBalance))
	builder.WriteString(fmt.Sprintf("Final Balance: %.2f\n", result.FinalBalance))
	builder.WriteString(fmt.Sprintf("Total PnL: %.2f\n", result.TotalPnL))
	builder.WriteString(fmt.Sprintf("Total Trades: %d (%d wins / %d losses)\n", result.TotalTrades, result.WinningTrades, result.LosingTrades))
	builder.WriteString(fmt.Sprintf("Win Rate: %.2f%%\n", result.WinRate))
	builder.WriteString(fmt.Sprintf("Profit Factor: %s\n", formatRatio(result.ProfitFactor)))
	builder.WriteString(fmt.Sprintf("Expectancy: %.2f\n", result.Expectancy))
	builder.WriteString(fmt.Sprintf("Sharpe Ratio: %.2f\n", result.SharpeRatio))
	builder.WriteString(fmt.Sprintf("Sortino Ratio: %.2f\n", result.SortinoRatio))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f (%.2f%%)\n", result.MaxDrawdown, result.MaxDrawdownPercent))
	builder.WriteString(fmt.Sprintf("Calmar Ratio: %.2f\n", result.CalmarRatio))
	builder.WriteString(fmt.Sprintf("Recovery Factor: %.2f\n", result.RecoveryFactor))
	builder.WriteString(fmt.Sprintf("Max Consecutive Wins: %d\n", result.ConsecutiveWins))
	builder.WriteString(fmt.Sprintf("Max Consecutive Losses: %d\n", result.ConsecutiveLosses))
	if len(result.Violations) > 0 {
		builder.WriteString(fmt.Sprintf("Rule Violations: %d\n", len(result.Violations)))
		for _, violation := range result.Violations {
			builder.WriteString(fmt.Sprintf("  %s %s amount=%.2f limit=%.2f\n",
				violation.Date.Format("2006-01-02"), violation.Type, violation.Amount, violation.Limit))
		}
	}
	return builder.String()
}

// GenerateCSVExport exports the headline statistics for spreadsheets
func GenerateCSVExport(result *Result, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	csv := "metric,value\n" +
		fmt.Sprintf("total_trades,%d\n", result.TotalTrades) +
		fmt.Sprintf("win_rate,%.4f\n", result.WinRate) +
		fmt.Sprintf("total_pnl,%.4f\n", result.TotalPnL) +
		fmt.Sprintf("profit_factor,%s\n", formatRatio(result.ProfitFactor)) +
		fmt.Sprintf("sharpe_ratio,%.4f\n", result.SharpeRatio) +
		fmt.Sprintf("sortino_ratio,%.4f\n", result.SortinoRatio) +
		fmt.Sprintf("max_drawdown,%.4f\n", result.MaxDrawdown) +
		fmt.Sprintf("max_drawdown_percent,%.4f\n", result.MaxDrawdownPercent) +
		fmt.Sprintf("expectancy,%.4f\n", result.Expectancy) +
		fmt.Sprintf("final_balance,%.4f\n", result.FinalBalance)
	return os.WriteFile(outputPath, []byte(csv), 0o644)
}

// WriteJSONReport writes the full result, including trades and the equity
// curve, to a JSON file.
func WriteJSONReport(result *Result, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	data, err := result.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func formatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", v)
}
