// Package helpers provides shared fixtures for integration and end-to-end
// tests: synthetic bar series and CSV files in the data source format.
package helpers

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

// BarsFromCloses builds an evenly spaced bar series where each bar's OHLC all
// sit at the given close. Useful when only the close path matters.
func BarsFromCloses(start time.Time, interval time.Duration, closes []float64) []models.Bar {
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Timestamp: start.Add(time.Duration(i) * interval),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1000,
		}
	}
	return bars
}

// FlatThenStep returns n flat closes at base followed by the given tail
// closes. A sufficiently large step in the tail forces a moving-average cross.
func FlatThenStep(n int, base float64, tail ...float64) []float64 {
	closes := make([]float64, 0, n+len(tail))
	for i := 0; i < n; i++ {
		closes = append(closes, base)
	}
	return append(closes, tail...)
}

// WriteBarCSV writes bars as a CSV file the data source can load and returns
// its path. The file is placed in dir and cleaned up with the test.
func WriteBarCSV(t *testing.T, dir, name string, bars []models.Bar) string {
	t.Helper()

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err, "failed to create CSV fixture")
	defer file.Close()

	writer := csv.NewWriter(file)
	require.NoError(t, writer.Write([]string{"timestamp", "open", "high", "low", "close", "volume"}))
	for _, bar := range bars {
		record := []string{
			bar.Timestamp.UTC().Format(time.RFC3339),
			formatPrice(bar.Open),
			formatPrice(bar.High),
			formatPrice(bar.Low),
			formatPrice(bar.Close),
			formatPrice(bar.Volume),
		}
		require.NoError(t, writer.Write(record))
	}
	writer.Flush()
	require.NoError(t, writer.Error(), "failed to flush CSV fixture")

	return path
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%g", v)
}

// TestContext creates a context cancelled when the test finishes.
func TestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// GetEnvOrDefault returns environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SkipIfShort skips test if running in short mode.
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}
