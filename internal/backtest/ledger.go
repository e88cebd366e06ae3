package backtest

import (
	"time"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

// PositionLedger owns the set of open simulated positions. A position lives
// in the ledger from open until it is handed over as a Trade exactly once.
type PositionLedger struct {
	open []*models.Position
}

// NewPositionLedger creates an empty ledger.
func NewPositionLedger() *PositionLedger {
	return &PositionLedger{open: []*models.Position{}}
}

// OpenCount returns the number of currently open positions.
func (l *PositionLedger) OpenCount() int {
	return len(l.open)
}

// OpenPositions returns the open positions in open order.
func (l *PositionLedger) OpenPositions() []*models.Position {
	return l.open
}

// Open creates a position from an accepted signal. IDs increase
// monotonically: closed trades + open positions + 1.
func (l *PositionLedger) Open(signal models.Signal, timestamp time.Time, closedTrades int) *models.Position {
	signal = signal.WithDefaults()
	position := &models.Position{
		ID:           closedTrades + len(l.open) + 1,
		Instrument:   signal.Instrument,
		Action:       signal.Action,
		EntryPrice:   signal.EntryPrice,
		StopLoss:     signal.StopLoss,
		TakeProfit:   signal.TakeProfit,
		PositionSize: signal.PositionSize,
		EntryTime:    timestamp,
		RiskAmount:   signal.RiskAmount,
		Status:       models.PositionOpen,
	}
	l.open = append(l.open, position)
	return position
}

// CheckExits evaluates every open position against the bar's close price and
// closes those whose stop loss or take profit has been hit. When both levels
// would trigger on the same bar the stop loss wins. Exits are checked against
// the close only, never the bar's high or low; this understates intrabar
// stop/target hits and is a known modeling limitation.
func (l *PositionLedger) CheckExits(bar models.Bar, timestamp time.Time) []models.Trade {
	closed := make([]models.Trade, 0)
	remaining := l.open[:0]
	price := bar.Close

	for _, position := range l.open {
		reason, hit := exitReasonFor(position, price)
		if !hit {
			remaining = append(remaining, position)
			continue
		}
		closed = append(closed, l.close(position, price, timestamp, reason))
	}

	l.open = remaining
	return closed
}

// ForceCloseAll closes every remaining open position at the given price with
// reason backtest_end. Used once, after the final bar.
func (l *PositionLedger) ForceCloseAll(price float64, timestamp time.Time) []models.Trade {
	closed := make([]models.Trade, 0, len(l.open))
	for _, position := range l.open {
		closed = append(closed, l.close(position, price, timestamp, models.ExitBacktestEnd))
	}
	l.open = l.open[:0]
	return closed
}

// Reset discards all open positions.
func (l *PositionLedger) Reset() {
	l.open = []*models.Position{}
}

func (l *PositionLedger) close(position *models.Position, exitPrice float64, timestamp time.Time, reason models.ExitReason) models.Trade {
	position.Status = models.PositionClosed
	return models.Trade{
		Position:        *position,
		ExitPrice:       exitPrice,
		ExitTime:        timestamp,
		PnL:             position.UnrealizedPnL(exitPrice),
		ExitReason:      reason,
		DurationMinutes: timestamp.Sub(position.EntryTime).Minutes(),
	}
}

func exitReasonFor(position *models.Position, price float64) (models.ExitReason, bool) {
	if position.Action == models.ActionBuy {
		if price <= position.StopLoss {
			return models.ExitStopLoss, true
		}
		if price >= position.TakeProfit {
			return models.ExitTakeProfit, true
		}
		return "", false
	}
	// sell: mirrored levels
	if price >= position.StopLoss {
		return models.ExitStopLoss, true
	}
	if price <= position.TakeProfit {
		return models.ExitTakeProfit, true
	}
	return "", false
}
