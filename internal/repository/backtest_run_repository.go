package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/WilliamPapier/MyPhytonEA/internal/database"
	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

const (
	errScanBacktestRun = "failed to scan backtest run: %w"

	backtestRunColumns = `id, strategy_name, run_date, start_date, end_date,
		initial_balance, final_balance, total_trades, win_rate, total_pnl,
		profit_factor, sharpe_ratio, max_drawdown, prop_firm, violations,
		full_results, created_at`
)

// PostgresBacktestRunRepository implements BacktestRunRepository for PostgreSQL
type PostgresBacktestRunRepository struct {
	db *database.DB
}

// NewPostgresBacktestRunRepository creates a new backtest run repository
func NewPostgresBacktestRunRepository(db *database.DB) BacktestRunRepository {
	return &PostgresBacktestRunRepository{db: db}
}

// Save inserts a backtest run record
func (r *PostgresBacktestRunRepository) Save(ctx context.Context, record *models.BacktestRunRecord) error {
	query := `
		INSERT INTO backtest_runs (` + backtestRunColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		record.ID, record.StrategyName, record.RunDate, record.StartDate, record.EndDate,
		record.InitialBalance, record.FinalBalance, record.TotalTrades, record.WinRate, record.TotalPnL,
		record.ProfitFactor, record.SharpeRatio, record.MaxDrawdown, record.PropFirm, record.Violations,
		record.FullResults, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save backtest run: %w", err)
	}
	return nil
}

// GetByID retrieves a single backtest run by ID
func (r *PostgresBacktestRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BacktestRunRecord, error) {
	query := `SELECT ` + backtestRunColumns + ` FROM backtest_runs WHERE id = $1`

	record := &models.BacktestRunRecord{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&record.ID, &record.StrategyName, &record.RunDate, &record.StartDate, &record.EndDate,
		&record.InitialBalance, &record.FinalBalance, &record.TotalTrades, &record.WinRate, &record.TotalPnL,
		&record.ProfitFactor, &record.SharpeRatio, &record.MaxDrawdown, &record.PropFirm, &record.Violations,
		&record.FullResults, &record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf(errScanBacktestRun, err)
	}
	return record, nil
}

// GetByStrategy retrieves backtest runs by strategy name
func (r *PostgresBacktestRunRepository) GetByStrategy(ctx context.Context, strategyName string) ([]*models.BacktestRunRecord, error) {
	query := `SELECT ` + backtestRunColumns + ` FROM backtest_runs WHERE strategy_name = $1 ORDER BY run_date DESC`
	return r.queryRuns(ctx, query, strategyName)
}

// GetLatest retrieves the most recent backtest runs
func (r *PostgresBacktestRunRepository) GetLatest(ctx context.Context, limit int) ([]*models.BacktestRunRecord, error) {
	query := `SELECT ` + backtestRunColumns + ` FROM backtest_runs ORDER BY run_date DESC LIMIT $1`
	return r.queryRuns(ctx, query, limit)
}

// GetByDateRange retrieves backtest runs within a date range
func (r *PostgresBacktestRunRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.BacktestRunRecord, error) {
	query := `SELECT ` + backtestRunColumns + ` FROM backtest_runs WHERE run_date >= $1 AND run_date <= $2 ORDER BY run_date DESC`
	return r.queryRuns(ctx, query, start, end)
}

func (r *PostgresBacktestRunRepository) queryRuns(ctx context.Context, query string, args ...interface{}) ([]*models.BacktestRunRecord, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest runs: %w", err)
	}
	defer rows.Close()

	var records []*models.BacktestRunRecord
	for rows.Next() {
		record := &models.BacktestRunRecord{}
		if err := rows.Scan(
			&record.ID, &record.StrategyName, &record.RunDate, &record.StartDate, &record.EndDate,
			&record.InitialBalance, &record.FinalBalance, &record.TotalTrades, &record.WinRate, &record.TotalPnL,
			&record.ProfitFactor, &record.SharpeRatio, &record.MaxDrawdown, &record.PropFirm, &record.Violations,
			&record.FullResults, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf(errScanBacktestRun, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
