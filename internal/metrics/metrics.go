// Package metrics provides the centralized Prometheus metrics registry for
// the backtester.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "myphytonea",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by status",
	}, []string{"status"})
	TradesClosedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "myphytonea",
		Name:      "trades_closed_total",
		Help:      "Total number of simulated trades closed by exit reason",
	}, []string{"exit_reason"})
	SignalsRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "myphytonea",
		Name:      "signals_rejected_total",
		Help:      "Total number of strategy signals dropped by the risk gate",
	})
	PropFirmViolationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "myphytonea",
		Name:      "prop_firm_violations_total",
		Help:      "Total number of prop firm rule violations by type",
	}, []string{"type"})
)

// Gauge metrics
var (
	CurrentBalance = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "myphytonea",
		Name:      "current_balance",
		Help:      "Simulated account balance in currency units",
	})
	OpenPositions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "myphytonea",
		Name:      "open_positions",
		Help:      "Number of currently open simulated positions",
	})
)

// Histogram metrics
var (
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "myphytonea",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(TradesClosedTotal)
		registry.MustRegister(SignalsRejectedTotal)
		registry.MustRegister(PropFirmViolationsTotal)

		registry.MustRegister(CurrentBalance)
		registry.MustRegister(OpenPositions)

		registry.MustRegister(BacktestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordBacktestRun records a backtest run event.
// status should be one of: "success", "failure"
func RecordBacktestRun(status string) {
	BacktestRunsTotal.WithLabelValues(status).Inc()
}

// RecordTradeClosed records a simulated trade closure.
func RecordTradeClosed(exitReason string) {
	TradesClosedTotal.WithLabelValues(exitReason).Inc()
}

// RecordSignalRejected records a risk-gate rejection.
func RecordSignalRejected() {
	SignalsRejectedTotal.Inc()
}

// RecordViolation records a prop firm rule violation.
func RecordViolation(violationType string) {
	PropFirmViolationsTotal.WithLabelValues(violationType).Inc()
}
