package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

const csvSourceName = "csv"

// csvTimeFormats are the accepted timestamp layouts, tried in order. Layouts
// without a zone are taken as UTC.
var csvTimeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CSVSource loads OHLCV bars from a local CSV file. Parsed files are cached
// by path, so repeated backtest runs over the same file skip the disk read.
type CSVSource struct {
	path   string
	cache  *gocache.Cache
	logger *logrus.Logger
}

// NewCSVSource creates a CSV-backed bar source.
func NewCSVSource(path string, cacheTTL time.Duration, logger *logrus.Logger) *CSVSource {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CSVSource{
		path:   path,
		cache:  gocache.New(cacheTTL, 2*cacheTTL),
		logger: logger,
	}
}

// Name returns the name of the data source
func (s *CSVSource) Name() string {
	return csvSourceName
}

// FetchBars loads the file, validates ordering, and returns the bars inside
// the requested range. The instrument argument is accepted for interface
// parity; a CSV file carries a single instrument.
func (s *CSVSource) FetchBars(ctx context.Context, instrument string, startDate, endDate time.Time) ([]models.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bars, err := s.load()
	if err != nil {
		return nil, err
	}
	return models.FilterBarsByRange(bars, startDate, endDate), nil
}

func (s *CSVSource) load() ([]models.Bar, error) {
	if cached, found := s.cache.Get(s.path); found {
		return cached.([]models.Bar), nil
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, NewDataSourceError(csvSourceName, ErrCodeNotFound, fmt.Sprintf("cannot open %s", s.path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 6
	records, err := reader.ReadAll()
	if err != nil {
		return nil, NewDataSourceError(csvSourceName, ErrCodeInvalidData, "malformed CSV", err)
	}
	if len(records) == 0 {
		return nil, NewDataSourceError(csvSourceName, ErrCodeInvalidData, "empty file", nil)
	}

	// Skip a header row if the first field is not a timestamp.
	start := 0
	if _, err := parseCSVTime(records[0][0]); err != nil {
		start = 1
	}

	bars := make([]models.Bar, 0, len(records)-start)
	for i, record := range records[start:] {
		bar, err := parseCSVBar(record)
		if err != nil {
			return nil, NewDataSourceError(csvSourceName, ErrCodeInvalidData, fmt.Sprintf("row %d", start+i+1), err)
		}
		bars = append(bars, bar)
	}

	if err := models.ValidateBars(bars); err != nil {
		return nil, NewDataSourceError(csvSourceName, ErrCodeInvalidData, "bars out of order", err)
	}

	s.cache.Set(s.path, bars, gocache.DefaultExpiration)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"path": s.path, "bars": len(bars)}).Debug("Loaded CSV bars")
	}
	return bars, nil
}

func parseCSVBar(record []string) (models.Bar, error) {
	timestamp, err := parseCSVTime(record[0])
	if err != nil {
		return models.Bar{}, fmt.Errorf("invalid timestamp %q: %w", record[0], err)
	}

	fields := make([]float64, 5)
	for i, raw := range record[1:6] {
		// Prices are validated through decimal before float conversion.
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return models.Bar{}, fmt.Errorf("invalid numeric field %q: %w", raw, err)
		}
		fields[i] = d.InexactFloat64()
	}

	return models.Bar{
		Timestamp: timestamp,
		Open:      fields[0],
		High:      fields[1],
		Low:       fields[2],
		Close:     fields[3],
		Volume:    fields[4],
	}, nil
}

func parseCSVTime(raw string) (time.Time, error) {
	for _, layout := range csvTimeFormats {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format %q", raw)
}
