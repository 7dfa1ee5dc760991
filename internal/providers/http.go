package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/contributorsambhav/portfolio/internal/activity"
	apperrors "github.com/contributorsambhav/portfolio/internal/errors"
)

// maxBody caps how much of a provider response is read.
const maxBody = 16 << 20

const userAgent = "portfolio-activity/1.0"

// doJSON sends req and decodes a 2xx JSON response into v.
// Transport failures and bad statuses become UPSTREAM errors.
func doJSON(ctx context.Context, client *http.Client, provider activity.Provider, req *http.Request, v any) error {
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.NewUpstream(string(provider), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return apperrors.NewUpstream(string(provider), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.NewUpstream(string(provider), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.NewUpstream(string(provider), fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// unixDay returns the UTC calendar date of a unix timestamp in seconds.
func unixDay(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(activity.DateLayout)
}
