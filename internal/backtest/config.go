package backtest

import (
	"fmt"
	"time"

	"github.com/WilliamPapier/MyPhytonEA/internal/config"
	"github.com/WilliamPapier/MyPhytonEA/internal/risk"
)

// Config holds engine-level simulation settings. Zero risk limits fall
// back to the risk package defaults.
type Config struct {
	InitialBalance   float64
	RiskFreeRate     float64
	MaxRiskPerTrade  float64
	MaxOpenPositions int
	StartDate        time.Time
	EndDate          time.Time
	OutputPath       string
}

// DefaultConfig returns the standard simulation settings
func DefaultConfig() Config {
	return Config{
		InitialBalance:   10000.0,
		RiskFreeRate:     0.02,
		MaxRiskPerTrade:  risk.DefaultMaxRiskPerTrade,
		MaxOpenPositions: risk.DefaultMaxOpenPositions,
	}
}

// Limits returns the risk gate limits for this configuration.
func (c Config) Limits() risk.Limits {
	return risk.Limits{
		MaxRiskPerTrade:  c.MaxRiskPerTrade,
		MaxOpenPositions: c.MaxOpenPositions,
	}
}

// FromConfig converts app config to engine config
func FromConfig(cfg *config.Config) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("backtest config is required")
	}

	out := DefaultConfig()
	if cfg.Backtest.InitialBalance != 0 {
		out.InitialBalance = cfg.Backtest.InitialBalance
	}
	if cfg.Backtest.RiskFreeRate != 0 {
		out.RiskFreeRate = cfg.Backtest.RiskFreeRate
	}
	if cfg.Risk.MaxRiskPerTrade != 0 {
		out.MaxRiskPerTrade = cfg.Risk.MaxRiskPerTrade
	}
	if cfg.Risk.MaxOpenPositions != 0 {
		out.MaxOpenPositions = cfg.Risk.MaxOpenPositions
	}
	out.OutputPath = cfg.Backtest.OutputPath

	// Empty date strings leave the range unbounded on that side.
	if cfg.Backtest.StartDate != "" {
		start, err := time.Parse("2006-01-02", cfg.Backtest.StartDate)
		if err != nil {
			return Config{}, fmt.Errorf("invalid start date: %w", err)
		}
		out.StartDate = start
	}
	if cfg.Backtest.EndDate != "" {
		end, err := time.Parse("2006-01-02", cfg.Backtest.EndDate)
		if err != nil {
			return Config{}, fmt.Errorf("invalid end date: %w", err)
		}
		out.EndDate = end
	}

	return out, out.Validate()
}

// Validate validates engine config parameters
func (c Config) Validate() error {
	if c.InitialBalance <= 0 {
		return fmt.Errorf("initial balance must be positive")
	}
	if c.RiskFreeRate < 0 || c.RiskFreeRate >= 1 {
		return fmt.Errorf("risk free rate must be between 0 and 1")
	}
	if c.MaxRiskPerTrade < 0 || c.MaxRiskPerTrade >= 1 {
		return fmt.Errorf("max risk per trade must be between 0 and 1")
	}
	if c.MaxOpenPositions < 0 {
		return fmt.Errorf("max open positions must not be negative")
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.StartDate.After(c.EndDate) {
		return fmt.Errorf("start date must be before end date")
	}
	return nil
}
