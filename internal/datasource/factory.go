package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WilliamPapier/MyPhytonEA/internal/config"
)

// NewBarSource creates a BarSource from configuration.
func NewBarSource(cfg config.DataSourceConfig, logger *logrus.Logger) (BarSource, error) {
	switch cfg.Provider {
	case "csv":
		if cfg.CSVPath == "" {
			return nil, fmt.Errorf("csv provider requires csv_path")
		}
		return NewCSVSource(cfg.CSVPath, time.Duration(cfg.CacheTTLSeconds)*time.Second, logger), nil

	case "http":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("http provider requires base_url")
		}
		clientCfg := DefaultHTTPClientConfig()
		if cfg.TimeoutSeconds > 0 {
			clientCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.RetryAttempts > 0 {
			clientCfg.MaxRetries = cfg.RetryAttempts
		}
		if cfg.RequestsPerSecond > 0 {
			clientCfg.RateLimit = cfg.RequestsPerSecond
		}
		client := NewRateLimitedHTTPClient(clientCfg, logger)
		return NewHTTPBarSource(client, cfg.BaseURL, cfg.APIKey, logger), nil

	default:
		return nil, fmt.Errorf("unknown data source provider: %s", cfg.Provider)
	}
}
