package backtest

import (
	"testing"

	"github.com/WilliamPapier/MyPhytonEA/internal/config"
	"github.com/WilliamPapier/MyPhytonEA/internal/risk"
)

func TestFromConfigCarriesRiskLimits(t *testing.T) {
	appCfg := &config.Config{
		Backtest: config.BacktestConfig{
			InitialBalance: 25000,
			RiskFreeRate:   0.03,
		},
		Risk: config.RiskConfig{
			MaxRiskPerTrade:  0.01,
			MaxOpenPositions: 2,
		},
	}

	engineCfg, err := FromConfig(appCfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if engineCfg.MaxRiskPerTrade != 0.01 {
		t.Errorf("expected max risk per trade 0.01, got %f", engineCfg.MaxRiskPerTrade)
	}
	if engineCfg.MaxOpenPositions != 2 {
		t.Errorf("expected max open positions 2, got %d", engineCfg.MaxOpenPositions)
	}

	limits := engineCfg.Limits()
	if limits != (risk.Limits{MaxRiskPerTrade: 0.01, MaxOpenPositions: 2}) {
		t.Errorf("unexpected gate limits %+v", limits)
	}
}

func TestFromConfigDefaultsRiskLimits(t *testing.T) {
	appCfg := &config.Config{
		Backtest: config.BacktestConfig{InitialBalance: 10000, RiskFreeRate: 0.02},
	}

	engineCfg, err := FromConfig(appCfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if engineCfg.MaxRiskPerTrade != risk.DefaultMaxRiskPerTrade {
		t.Errorf("expected default max risk per trade, got %f", engineCfg.MaxRiskPerTrade)
	}
	if engineCfg.MaxOpenPositions != risk.DefaultMaxOpenPositions {
		t.Errorf("expected default max open positions, got %d", engineCfg.MaxOpenPositions)
	}
}

func TestConfigValidateRejectsBadRiskLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRiskPerTrade = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for max risk per trade outside (0, 1)")
	}

	cfg = DefaultConfig()
	cfg.MaxOpenPositions = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative max open positions")
	}
}
