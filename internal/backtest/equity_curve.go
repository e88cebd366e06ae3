package backtest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// EquitySample represents per-bar equity: balance plus unrealized PnL of all
// open positions, with the running drawdown at that bar.
type EquitySample struct {
	Timestamp time.Time `json:"timestamp"`
	Equity    float64   `json:"equity"`
	Balance   float64   `json:"balance"`
	Drawdown  float64   `json:"drawdown"`
}

// EquityCurve is the append-only time series of equity samples, one per
// processed bar.
type EquityCurve []EquitySample

// Returns calculates per-bar equity differences. The statistics layer treats
// these absolute currency changes as the return series.
func (e EquityCurve) Returns() []float64 {
	if len(e) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		returns = append(returns, e[i].Equity-e[i-1].Equity)
	}
	return returns
}

// Values extracts the raw equity series.
func (e EquityCurve) Values() []float64 {
	values := make([]float64, len(e))
	for i, sample := range e {
		values[i] = sample.Equity
	}
	return values
}

// ToCSV exports the equity curve to a CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("timestamp,equity,balance,drawdown\n")
	for _, sample := range e {
		buf.WriteString(sample.Timestamp.Format(time.RFC3339))
		buf.WriteString(",")
		buf.WriteString(formatFloat(sample.Equity))
		buf.WriteString(",")
		buf.WriteString(formatFloat(sample.Balance))
		buf.WriteString(",")
		buf.WriteString(formatFloat(sample.Drawdown))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the equity curve to a JSON string
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
