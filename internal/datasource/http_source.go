package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

const httpSourceName = "http"

// HTTPBarSource fetches OHLCV bars from a REST endpoint. The endpoint is
// expected to serve GET {base}/bars?instrument=X&from=Y&to=Z with a JSON
// body of barPayload records.
type HTTPBarSource struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Logger
}

type barPayload struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

type barsResponse struct {
	Instrument string       `json:"instrument"`
	Bars       []barPayload `json:"bars"`
}

// NewHTTPBarSource creates a REST-backed bar source.
func NewHTTPBarSource(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger *logrus.Logger) *HTTPBarSource {
	return &HTTPBarSource{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (s *HTTPBarSource) Name() string {
	return httpSourceName
}

// FetchBars retrieves bars for an instrument within the date range.
func (s *HTTPBarSource) FetchBars(ctx context.Context, instrument string, startDate, endDate time.Time) ([]models.Bar, error) {
	endpoint := fmt.Sprintf("%s/bars?instrument=%s&from=%s&to=%s",
		s.baseURL,
		url.QueryEscape(instrument),
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewDataSourceError(httpSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(httpSourceName, ErrCodeNetworkError, "failed to fetch bars", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, NewDataSourceError(httpSourceName, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewDataSourceError(httpSourceName, ErrCodeNotFound, instrument, ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(httpSourceName, ErrCodeRateLimitExceeded, "rate limited", ErrRateLimitExceeded)
	case resp.StatusCode != http.StatusOK:
		return nil, NewDataSourceError(httpSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewDataSourceError(httpSourceName, ErrCodeNetworkError, "failed to read response", err)
	}

	var payload barsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewDataSourceError(httpSourceName, ErrCodeInvalidData, "malformed JSON", err)
	}

	bars := make([]models.Bar, 0, len(payload.Bars))
	for _, record := range payload.Bars {
		timestamp, err := parseCSVTime(record.Timestamp)
		if err != nil {
			return nil, NewDataSourceError(httpSourceName, ErrCodeInvalidData, "bad timestamp", err)
		}
		bars = append(bars, models.Bar{
			Timestamp: timestamp,
			Open:      record.Open,
			High:      record.High,
			Low:       record.Low,
			Close:     record.Close,
			Volume:    record.Volume,
		})
	}

	if err := models.ValidateBars(bars); err != nil {
		return nil, NewDataSourceError(httpSourceName, ErrCodeInvalidData, "bars out of order", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"instrument": instrument, "bars": len(bars)}).Debug("Fetched bars")
	}
	return bars, nil
}
