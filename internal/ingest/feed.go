package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deepdiver/funnelreport/internal/models"
	"github.com/deepdiver/funnelreport/internal/utils"
)

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// FetchFeed pulls raw funnel rows from a JSON feed endpoint, retrying
// transient failures with exponential backoff. The feed returns an
// array of objects keyed by the same column headers as the workbook,
// leading-space header and all.
func FetchFeed(ctx context.Context, c HTTPClient, url string) ([]models.RawRecord, error) {
	if url == "" {
		return nil, errors.New("empty feed url")
	}
	var rows []models.RawRecord
	err := utils.NewBackoff(100*time.Millisecond, 2).Do(func(int) error {
		rows = rows[:0]
		return getJSON(ctx, c, url, &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	return rows, nil
}

func getJSON(ctx context.Context, c HTTPClient, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("non-2xx: %d body=%s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
