package models

import "fmt"

// TradeAction indicates the direction of a signal or position
type TradeAction string

// Trade actions
const (
	ActionBuy  TradeAction = "buy"
	ActionSell TradeAction = "sell"
)

// DefaultPositionSize is one standard lot in units.
const DefaultPositionSize = 100000.0

// Signal represents a candidate trade emitted by a strategy for a single bar.
// Action, Instrument, EntryPrice, StopLoss and TakeProfit are required;
// PositionSize and RiskAmount are optional and defaulted at construction.
type Signal struct {
	Action       TradeAction `json:"action"`
	Instrument   string      `json:"instrument"`
	EntryPrice   float64     `json:"entry_price"`
	StopLoss     float64     `json:"stop_loss"`
	TakeProfit   float64     `json:"take_profit"`
	PositionSize float64     `json:"position_size"`
	RiskAmount   float64     `json:"risk_amount"`
}

// Validate checks that all required fields are present
func (s Signal) Validate() error {
	if s.Action != ActionBuy && s.Action != ActionSell {
		return fmt.Errorf("%w: action", ErrMissingSignalFields)
	}
	if s.Instrument == "" {
		return fmt.Errorf("%w: instrument", ErrMissingSignalFields)
	}
	if s.EntryPrice == 0 {
		return fmt.Errorf("%w: entry_price", ErrMissingSignalFields)
	}
	if s.StopLoss == 0 {
		return fmt.Errorf("%w: stop_loss", ErrMissingSignalFields)
	}
	if s.TakeProfit == 0 {
		return fmt.Errorf("%w: take_profit", ErrMissingSignalFields)
	}
	return nil
}

// WithDefaults returns a copy of the signal with optional fields defaulted.
// A zero position size becomes one standard lot; risk amount stays zero.
func (s Signal) WithDefaults() Signal {
	if s.PositionSize == 0 {
		s.PositionSize = DefaultPositionSize
	}
	return s
}
