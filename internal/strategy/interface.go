// Package strategy defines the pluggable signal-generation interface and the
// reference strategies shipped with the backtester.
package strategy

import (
	"context"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

// Strategy generates candidate trades from price history. Evaluate is called
// once per bar with the data window up to and including the current bar; it
// may return no signals. An Evaluate error is absorbed by the engine and
// treated as "no signals this bar".
type Strategy interface {
	Name() string
	Evaluate(ctx context.Context, window []models.Bar) ([]models.Signal, error)
	GetParameters() map[string]interface{}
}
