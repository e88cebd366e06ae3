package repository

import (
	"github.com/WilliamPapier/MyPhytonEA/internal/database"
)

// Repositories aggregates all data access objects
type Repositories struct {
	BacktestRuns BacktestRunRepository
}

// NewRepositories creates the repository set backed by the given database
func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		BacktestRuns: NewPostgresBacktestRunRepository(db),
	}
}
