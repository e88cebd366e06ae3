package backtest

import (
	"math"
	"sort"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
	"github.com/WilliamPapier/MyPhytonEA/internal/propfirm"
)

const tradingDaysPerYear = 252.0

// ComputeResult builds the full report from the raw run artifacts. All
// statistics are pure functions of the inputs, so identical runs produce
// identical results.
func ComputeResult(trades []models.Trade, equity EquityCurve, initialBalance, finalBalance float64, bars []models.Bar, violations []propfirm.Violation, riskFreeRate float64) *Result {
	result := &Result{
		TradingDays:     len(bars),
		InitialBalance:  initialBalance,
		FinalBalance:    finalBalance,
		Trades:          trades,
		EquityCurve:     equity,
		DailyPnL:        []DailyPnL{},
		DrawdownPeriods: []DrawdownPeriod{},
		MonthlyReturns:  map[string]float64{},
		Violations:      violations,
	}
	if len(bars) > 0 {
		result.StartDate = bars[0].Timestamp.UTC().Format("2006-01-02")
		result.EndDate = bars[len(bars)-1].Timestamp.UTC().Format("2006-01-02")
	}
	if len(trades) == 0 {
		return result
	}

	result.TotalTrades = len(trades)
	var wins, losses []float64
	for _, trade := range trades {
		result.TotalPnL += trade.PnL
		switch {
		case trade.PnL > 0:
			wins = append(wins, trade.PnL)
			result.GrossProfit += trade.PnL
		case trade.PnL < 0:
			losses = append(losses, trade.PnL)
			result.GrossLoss += math.Abs(trade.PnL)
		}
	}
	result.WinningTrades = len(wins)
	result.LosingTrades = len(losses)
	result.WinRate = float64(result.WinningTrades) / float64(result.TotalTrades) * 100

	if result.GrossLoss > 0 {
		result.ProfitFactor = result.GrossProfit / result.GrossLoss
	} else {
		result.ProfitFactor = math.Inf(1)
	}

	result.AverageWin = mean(wins)
	result.AverageLoss = mean(losses)
	result.LargestWin = maxOf(wins)
	result.LargestLoss = minOf(losses)

	result.Expectancy = (result.WinRate/100)*result.AverageWin + ((100-result.WinRate)/100)*result.AverageLoss

	result.ConsecutiveWins = maxConsecutive(trades, true)
	result.ConsecutiveLosses = maxConsecutive(trades, false)

	result.MaxDrawdown, result.MaxDrawdownPercent, result.DrawdownPeriods = analyzeDrawdown(equity.Values())

	returns := equity.Returns()
	result.SharpeRatio = sharpeRatio(returns, riskFreeRate)
	result.SortinoRatio = sortinoRatio(returns, riskFreeRate)

	annualReturn := (finalBalance/initialBalance - 1) * (365.0 / float64(len(bars)))
	if result.MaxDrawdownPercent > 0 {
		result.CalmarRatio = annualReturn / (result.MaxDrawdownPercent / 100)
	}
	if result.MaxDrawdown > 0 {
		result.RecoveryFactor = result.TotalPnL / result.MaxDrawdown
	}

	result.DailyPnL = dailyPnL(trades)
	result.MonthlyReturns = monthlyReturns(trades)

	return result
}

// maxConsecutive finds the longest run of winning (or non-winning) trades in
// close order. A zero-PnL trade breaks a winning streak and extends a losing
// one.
func maxConsecutive(trades []models.Trade, wins bool) int {
	longest := 0
	current := 0
	for _, trade := range trades {
		if (trade.PnL > 0) == wins {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

// analyzeDrawdown scans the equity series for the deepest drawdown (absolute
// and as a percent of the peak) and records each completed peak-to-recovery
// period. A drawdown that never recovers before the series ends is not
// recorded as a period.
func analyzeDrawdown(values []float64) (float64, float64, []DrawdownPeriod) {
	periods := []DrawdownPeriod{}
	if len(values) == 0 {
		return 0, 0, periods
	}

	peak := values[0]
	maxDrawdown := 0.0
	maxDrawdownPercent := 0.0
	start := -1

	for i, value := range values {
		if value > peak {
			if start >= 0 {
				periods = append(periods, DrawdownPeriod{
					StartIndex:   start,
					EndIndex:     i - 1,
					DurationBars: i - start,
					MaxDrawdown:  peak - minOf(values[start:i]),
				})
				start = -1
			}
			peak = value
			continue
		}

		if start < 0 {
			start = i
		}
		drawdown := peak - value
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
		if peak > 0 {
			percent := drawdown / peak * 100
			if percent > maxDrawdownPercent {
				maxDrawdownPercent = percent
			}
		}
	}

	return maxDrawdown, maxDrawdownPercent, periods
}

// sharpeRatio annualizes the mean excess return over its population standard
// deviation.
func sharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - riskFreeRate/tradingDaysPerYear
	}
	std := populationStddev(excess)
	if std == 0 {
		return 0
	}
	return mean(excess) / std * math.Sqrt(tradingDaysPerYear)
}

// sortinoRatio is the Sharpe variant that penalizes only downside
// volatility: the denominator is the population stddev of the negative raw
// returns.
func sortinoRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}
	if len(negative) == 0 {
		return 0
	}
	std := populationStddev(negative)
	if std == 0 {
		return 0
	}
	excessMean := mean(returns) - riskFreeRate/tradingDaysPerYear
	return excessMean / std * math.Sqrt(tradingDaysPerYear)
}

// dailyPnL aggregates realized PnL by UTC exit date, sorted by date.
func dailyPnL(trades []models.Trade) []DailyPnL {
	byDate := map[string]float64{}
	for _, trade := range trades {
		byDate[trade.ExitTime.UTC().Format("2006-01-02")] += trade.PnL
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	out := make([]DailyPnL, 0, len(dates))
	for _, date := range dates {
		out = append(out, DailyPnL{Date: date, PnL: byDate[date]})
	}
	return out
}

// monthlyReturns aggregates realized PnL by UTC exit month.
func monthlyReturns(trades []models.Trade) map[string]float64 {
	byMonth := map[string]float64{}
	for _, trade := range trades {
		byMonth[trade.ExitTime.UTC().Format("2006-01")] += trade.PnL
	}
	return byMonth
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	out := values[0]
	for _, v := range values[1:] {
		if v > out {
			out = v
		}
	}
	return out
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	out := values[0]
	for _, v := range values[1:] {
		if v < out {
			out = v
		}
	}
	return out
}
