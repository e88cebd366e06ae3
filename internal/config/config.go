// Package config provides configuration management for the MyPhytonEA backtester.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	DataSource DataSourceConfig `mapstructure:"data_source" validate:"required"`
	Backtest   BacktestConfig   `mapstructure:"backtest" validate:"required"`
	Risk       RiskConfig       `mapstructure:"risk"`
	PropFirm   PropFirmConfig   `mapstructure:"prop_firm"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration. The database
// is optional: it is only dialed when result persistence is requested.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// DataSourceConfig represents the bar data provider configuration
type DataSourceConfig struct {
	Provider           string  `mapstructure:"provider" validate:"required,oneof=csv http"`
	CSVPath            string  `mapstructure:"csv_path"`
	BaseURL            string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey             string  `mapstructure:"api_key"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	RetryAttempts      int     `mapstructure:"retry_attempts" validate:"omitempty,gte=0"`
	CacheTTLSeconds    int     `mapstructure:"cache_ttl_seconds" validate:"omitempty,gt=0"`
	RequestsPerSecond  float64 `mapstructure:"requests_per_second" validate:"omitempty,gt=0"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	StartDate      string  `mapstructure:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string  `mapstructure:"end_date" validate:"omitempty,datetime=2006-01-02"`
	InitialBalance float64 `mapstructure:"initial_balance" validate:"omitempty,gt=0"`
	RiskFreeRate   float64 `mapstructure:"risk_free_rate" validate:"gte=0,lt=1"`
	Strategy       string  `mapstructure:"strategy"`
	OutputPath     string  `mapstructure:"output_path"`
	Persist        bool    `mapstructure:"persist"`
}

// RiskConfig represents risk gate configuration
type RiskConfig struct {
	MaxRiskPerTrade  float64 `mapstructure:"max_risk_per_trade" validate:"omitempty,gt=0,lt=1"`
	MaxOpenPositions int     `mapstructure:"max_open_positions" validate:"omitempty,gt=0"`
}

// PropFirmConfig represents prop firm simulation configuration
type PropFirmConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Firm    string `mapstructure:"firm"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// HasDatabase reports whether a database connection is configured.
func (c *Config) HasDatabase() bool {
	return c.Database.Host != ""
}
