package infrastructure

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"salespulse/internal/domain"
	"salespulse/pkg/logger"
	"salespulse/pkg/metrics"

	"golang.org/x/time/rate"
)

// SheetClient implements domain.SheetSource against a published
// spreadsheet CSV export.
type SheetClient struct {
	client      *http.Client
	sheetURL    string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

func NewSheetClient(sheetURL string, timeout time.Duration, ratePerSecond int, logger *logger.Logger, metrics *metrics.Metrics) *SheetClient {
	return &SheetClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sheetURL:    sheetURL,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
	}
}

// FetchRows downloads the current CSV export and decodes it into rows
// keyed by header label. Any transport or document-level failure is
// returned as an error; the caller keeps its previous snapshot.
func (c *SheetClient) FetchRows(ctx context.Context) ([]domain.RawRow, error) {
	start := time.Now()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cacheBustedURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet export returned status %d", resp.StatusCode)
	}

	rows, err := decodeCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sheet CSV: %w", err)
	}

	c.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"duration": time.Since(start),
		"rows":     len(rows),
	}).Info("Fetched sheet export")

	return rows, nil
}

// cacheBustedURL appends a timestamp so every request hits a fresh
// generation of the export instead of an edge cache.
func (c *SheetClient) cacheBustedURL() string {
	u, err := url.Parse(c.sheetURL)
	if err != nil {
		return c.sheetURL
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

func decodeCSV(r io.Reader) ([]domain.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	header := all[0]
	rows := make([]domain.RawRow, 0, len(all)-1)

	for _, cells := range all[1:] {
		row := make(domain.RawRow, len(header))
		empty := true
		for i, label := range header {
			if i >= len(cells) {
				break
			}
			value := strings.TrimSpace(cells[i])
			if value == "" {
				continue
			}
			empty = false
			// The export can repeat a column label; keep the first
			// non-empty cell.
			if _, exists := row[label]; !exists {
				row[label] = value
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}
