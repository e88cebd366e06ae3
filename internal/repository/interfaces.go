// Package repository provides data access for persisted backtest runs.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

// BacktestRunRepository defines backtest run persistence
type BacktestRunRepository interface {
	Save(ctx context.Context, record *models.BacktestRunRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BacktestRunRecord, error)
	GetByStrategy(ctx context.Context, strategyName string) ([]*models.BacktestRunRecord, error)
	GetLatest(ctx context.Context, limit int) ([]*models.BacktestRunRecord, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.BacktestRunRecord, error)
}
