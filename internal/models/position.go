package models

import "time"

// PositionStatus tracks the lifecycle of a simulated position
type PositionStatus string

// Position statuses
const (
	PositionOpen   PositionStatus = "open"
	PositionClosed PositionStatus = "closed"
)

// ExitReason explains why a position was closed
type ExitReason string

// Exit reasons
const (
	ExitStopLoss    ExitReason = "stop_loss"
	ExitTakeProfit  ExitReason = "take_profit"
	ExitBacktestEnd ExitReason = "backtest_end"
)

// Position represents a simulated open trade awaiting exit. The ledger is
// the sole owner of a position while it is open.
type Position struct {
	ID           int            `json:"id"`
	Instrument   string         `json:"instrument"`
	Action       TradeAction    `json:"action"`
	EntryPrice   float64        `json:"entry_price"`
	StopLoss     float64        `json:"stop_loss"`
	TakeProfit   float64        `json:"take_profit"`
	PositionSize float64        `json:"position_size"`
	EntryTime    time.Time      `json:"entry_time"`
	RiskAmount   float64        `json:"risk_amount"`
	Status       PositionStatus `json:"status"`
}

// UnrealizedPnL values the position against a price using the same formula
// applied at closure: (exit - entry) x (size / one lot), mirrored for sells.
func (p Position) UnrealizedPnL(price float64) float64 {
	lots := p.PositionSize / DefaultPositionSize
	if p.Action == ActionBuy {
		return (price - p.EntryPrice) * lots
	}
	return (p.EntryPrice - price) * lots
}

// Trade is a closed position with its realized outcome. Immutable once recorded.
type Trade struct {
	Position
	ExitPrice       float64    `json:"exit_price"`
	ExitTime        time.Time  `json:"exit_time"`
	PnL             float64    `json:"pnl"`
	ExitReason      ExitReason `json:"exit_reason"`
	DurationMinutes float64    `json:"duration_minutes"`
}
