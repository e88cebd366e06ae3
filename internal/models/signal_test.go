package models

import (
	"errors"
	"testing"
)

func validSignal() Signal {
	return Signal{
		Action:     ActionBuy,
		Instrument: "EURUSD",
		EntryPrice: 1.1000,
		StopLoss:   1.0950,
		TakeProfit: 1.1100,
	}
}

func TestSignalValidate(t *testing.T) {
	if err := validSignal().Validate(); err != nil {
		t.Errorf("expected valid signal, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Signal)
	}{
		{"missing action", func(s *Signal) { s.Action = "" }},
		{"unknown action", func(s *Signal) { s.Action = "hold" }},
		{"missing instrument", func(s *Signal) { s.Instrument = "" }},
		{"missing entry price", func(s *Signal) { s.EntryPrice = 0 }},
		{"missing stop loss", func(s *Signal) { s.StopLoss = 0 }},
		{"missing take profit", func(s *Signal) { s.TakeProfit = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			signal := validSignal()
			tc.mutate(&signal)
			if err := signal.Validate(); !errors.Is(err, ErrMissingSignalFields) {
				t.Errorf("expected ErrMissingSignalFields, got %v", err)
			}
		})
	}
}

func TestSignalWithDefaults(t *testing.T) {
	signal := validSignal()
	defaulted := signal.WithDefaults()
	if defaulted.PositionSize != DefaultPositionSize {
		t.Errorf("expected default position size, got %f", defaulted.PositionSize)
	}
	if defaulted.RiskAmount != 0 {
		t.Errorf("expected risk amount to stay zero, got %f", defaulted.RiskAmount)
	}

	signal.PositionSize = 50000
	if got := signal.WithDefaults().PositionSize; got != 50000 {
		t.Errorf("expected explicit size preserved, got %f", got)
	}
}

func TestPositionUnrealizedPnL(t *testing.T) {
	long := Position{Action: ActionBuy, EntryPrice: 100, PositionSize: DefaultPositionSize}
	if got := long.UnrealizedPnL(106); got != 6 {
		t.Errorf("expected 6 for one lot long, got %f", got)
	}
	if got := long.UnrealizedPnL(94); got != -6 {
		t.Errorf("expected -6 for one lot long, got %f", got)
	}

	short := Position{Action: ActionSell, EntryPrice: 100, PositionSize: DefaultPositionSize / 2}
	if got := short.UnrealizedPnL(96); got != 2 {
		t.Errorf("expected 2 for half lot short, got %f", got)
	}
}
