// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/WilliamPapier/MyPhytonEA/internal/backtest"
	"github.com/WilliamPapier/MyPhytonEA/internal/config"
	"github.com/WilliamPapier/MyPhytonEA/internal/database"
	"github.com/WilliamPapier/MyPhytonEA/internal/datasource"
	"github.com/WilliamPapier/MyPhytonEA/internal/health"
	"github.com/WilliamPapier/MyPhytonEA/internal/logger"
	"github.com/WilliamPapier/MyPhytonEA/internal/metrics"
	"github.com/WilliamPapier/MyPhytonEA/internal/propfirm"
	"github.com/WilliamPapier/MyPhytonEA/internal/repository"
	"github.com/WilliamPapier/MyPhytonEA/internal/strategy"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile    string
	strategyName  string
	instrument    string
	startDate     string
	endDate       string
	propFirmName  string
	outputPath    string
	persistResult bool

	appLogger *logrus.Logger
	cfg       *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&strategyName, "strategy", "s", "", "Strategy name to test")
	rootCmd.Flags().StringVar(&instrument, "instrument", "EURUSD", "Instrument to backtest")
	rootCmd.Flags().StringVar(&startDate, "start-date", "", "Override start date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&endDate, "end-date", "", "Override end date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&propFirmName, "prop-firm", "", "Simulate prop firm rules (e.g. ftmo)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output directory for JSON and CSV reports")
	rootCmd.Flags().BoolVar(&persistResult, "persist", false, "Persist the result to the database")

	rootCmd.AddCommand(firmsCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a deterministic strategy backtest over historical bars",
	Long: `Replays historical OHLCV bars through a trading strategy bar by bar,
simulating position lifecycle, risk limits, and optional prop firm rules,
and reports full performance statistics.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
			region := os.Getenv("AWS_REGION")
			secretName := os.Getenv("AWS_SECRET_NAME")
			if region == "" || secretName == "" {
				return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
			}
			if err := config.LoadSecretsFromAWS(loaded, region, secretName); err != nil {
				return fmt.Errorf("failed to load secrets: %w", err)
			}
		}
		if err := config.Validate(loaded); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cfg = loaded
		appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBacktest(cmd.Context())
	},
}

var firmsCmd = &cobra.Command{
	Use:   "firms",
	Short: "List the supported prop firms and their rule sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range propfirm.FirmNames() {
			rules, err := propfirm.RulesFor(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-20s max_daily_loss=%-8.0f max_monthly_loss=%-8.0f max_risk=%.1f%% max_positions=%d sessions=%v\n",
				name, rules.MaxDailyLoss, rules.MaxMonthlyLoss, rules.MaxRiskPerTrade*100, rules.MaxOpenPositions, rules.AllowedSessions)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("backtest %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	metrics.InitRegistry()
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runBacktest(ctx context.Context) error {
	engineCfg, err := buildEngineConfig()
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		healthServer := health.NewServer(health.Config{
			ServiceName: "backtest",
			Version:     Version,
			Commit:      GitCommit,
			Port:        strconv.Itoa(cfg.Metrics.Port),
			Logger:      appLogger,
		})
		if err := healthServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}
		healthServer.SetReady(true)
		defer healthServer.Shutdown()
	}

	source, err := datasource.NewBarSource(cfg.DataSource, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}

	bars, err := source.FetchBars(ctx, instrument, engineCfg.StartDate, engineCfg.EndDate)
	if err != nil {
		metrics.RecordBacktestRun("failure")
		return fmt.Errorf("failed to load bars: %w", err)
	}

	strat, err := resolveStrategy()
	if err != nil {
		return err
	}

	engine, err := backtest.NewEngine(engineCfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	firm := propFirmName
	if firm == "" && cfg.PropFirm.Enabled {
		firm = cfg.PropFirm.Firm
	}
	if firm != "" {
		if err := engine.EnablePropFirmSimulation(firm); err != nil {
			return err
		}
	}

	appLogger.WithFields(logrus.Fields{
		"strategy":   strat.Name(),
		"instrument": instrument,
		"bars":       len(bars),
		"prop_firm":  firm,
	}).Info("Starting backtest run")

	started := time.Now()
	result, err := engine.Run(ctx, bars, strat, engineCfg.StartDate, engineCfg.EndDate)
	metrics.BacktestDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.RecordBacktestRun("failure")
		return fmt.Errorf("backtest failed: %w", err)
	}
	metrics.RecordBacktestRun("success")

	fmt.Print(backtest.GenerateConsoleReport(result))

	if outputPath != "" {
		if err := backtest.WriteJSONReport(result, filepath.Join(outputPath, "result.json")); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		if err := backtest.GenerateCSVExport(result, filepath.Join(outputPath, "summary.csv")); err != nil {
			return fmt.Errorf("failed to write CSV export: %w", err)
		}
		appLogger.WithField("path", outputPath).Info("Reports written")
	}

	if persistResult || cfg.Backtest.Persist {
		if err := persistRun(ctx, result, strat.Name(), firm); err != nil {
			return err
		}
	}

	return nil
}

func buildEngineConfig() (backtest.Config, error) {
	engineCfg, err := backtest.FromConfig(cfg)
	if err != nil {
		return backtest.Config{}, err
	}
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return backtest.Config{}, fmt.Errorf("invalid start date: %w", err)
		}
		engineCfg.StartDate = parsed
	}
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return backtest.Config{}, fmt.Errorf("invalid end date: %w", err)
		}
		engineCfg.EndDate = parsed
	}
	if outputPath == "" {
		outputPath = cfg.Backtest.OutputPath
	}
	return engineCfg, nil
}

func resolveStrategy() (strategy.Strategy, error) {
	name := strategyName
	if name == "" {
		name = cfg.Backtest.Strategy
	}
	switch name {
	case "", "ma_cross":
		return strategy.NewMACrossStrategy(), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
}

func persistRun(ctx context.Context, result *backtest.Result, stratName, firm string) error {
	if !cfg.HasDatabase() {
		return fmt.Errorf("persistence requested but no database configured")
	}

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	record, err := repository.NewRunRecord(result, stratName, firm)
	if err != nil {
		return fmt.Errorf("failed to build run record: %w", err)
	}

	repos := repository.NewRepositories(db)
	if err := repos.BacktestRuns.Save(ctx, record); err != nil {
		return err
	}
	appLogger.WithField("run_id", record.ID).Info("Backtest run persisted")
	return nil
}
