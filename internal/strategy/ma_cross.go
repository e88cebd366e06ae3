package strategy

import (
	"context"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

// MACrossStrategy is a moving-average crossover strategy: a bullish MA5/MA20
// cross emits a buy, a bearish cross emits a sell. Stops and targets are set
// as fixed fractions of the entry price.
type MACrossStrategy struct {
	fastPeriod int
	slowPeriod int
	instrument string
}

// NewMACrossStrategy creates the default MA5/MA20 crossover strategy.
func NewMACrossStrategy() *MACrossStrategy {
	return &MACrossStrategy{
		fastPeriod: 5,
		slowPeriod: 20,
		instrument: "EURUSD",
	}
}

// Name returns the strategy identifier
func (s *MACrossStrategy) Name() string {
	return "ma_cross"
}

// GetParameters returns the tunable parameters for tracking
func (s *MACrossStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"fast_period": s.fastPeriod,
		"slow_period": s.slowPeriod,
		"instrument":  s.instrument,
	}
}

// Evaluate emits a signal when the fast MA crosses the slow MA on the
// current bar.
func (s *MACrossStrategy) Evaluate(ctx context.Context, window []models.Bar) ([]models.Signal, error) {
	_ = ctx
	if len(window) < s.slowPeriod+1 {
		return nil, nil
	}

	currFast := movingAverage(window, s.fastPeriod, 0)
	currSlow := movingAverage(window, s.slowPeriod, 0)
	prevFast := movingAverage(window, s.fastPeriod, 1)
	prevSlow := movingAverage(window, s.slowPeriod, 1)

	price := window[len(window)-1].Close

	if prevFast <= prevSlow && currFast > currSlow {
		return []models.Signal{{
			Action:       models.ActionBuy,
			Instrument:   s.instrument,
			EntryPrice:   price,
			StopLoss:     price * 0.995,
			TakeProfit:   price * 1.01,
			PositionSize: models.DefaultPositionSize,
			RiskAmount:   price * models.DefaultPositionSize * 0.005,
		}}, nil
	}
	if prevFast >= prevSlow && currFast < currSlow {
		return []models.Signal{{
			Action:       models.ActionSell,
			Instrument:   s.instrument,
			EntryPrice:   price,
			StopLoss:     price * 1.005,
			TakeProfit:   price * 0.99,
			PositionSize: models.DefaultPositionSize,
			RiskAmount:   price * models.DefaultPositionSize * 0.005,
		}}, nil
	}

	return nil, nil
}

// movingAverage averages the closes of the last period bars, shifted back by
// offset bars from the end of the window.
func movingAverage(window []models.Bar, period, offset int) float64 {
	end := len(window) - offset
	start := end - period
	if start < 0 {
		start = 0
	}
	if end <= start {
		return 0
	}
	sum := 0.0
	for _, bar := range window[start:end] {
		sum += bar.Close
	}
	return sum / float64(end-start)
}
