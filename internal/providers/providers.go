// Package providers fetches raw daily activity from GitHub, LeetCode and
// Codeforces. Adapters only parse; levelling happens in internal/activity.
package providers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/config"
	"github.com/contributorsambhav/portfolio/internal/metrics"
)

// Adapter fetches one provider's raw series.
type Adapter interface {
	Provider() activity.Provider
	Fetch(ctx context.Context) ([]activity.Record, error)
}

// Result is the outcome of one adapter fetch.
type Result struct {
	Provider activity.Provider
	Records  []activity.Record
	Err      error
	Duration time.Duration
}

// Fetcher runs adapters concurrently.
type Fetcher struct {
	Adapters []Adapter
	Timeout  time.Duration
	Logger   *zap.Logger
	Metrics  *metrics.Collector
}

// NewFetcher builds a Fetcher with breaker-wrapped adapters for every
// provider that has a handle in cfg.
func NewFetcher(cfg *config.Config, client *http.Client, logger *zap.Logger, m *metrics.Collector) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = &http.Client{}
	}

	var adapters []Adapter
	if cfg.GitHubUser != "" {
		adapters = append(adapters, NewGitHub(cfg.GitHubAPIBase, cfg.GitHubUser, client))
	}
	if cfg.LeetCodeUser != "" {
		adapters = append(adapters, NewLeetCode(cfg.LeetCodeAPIBase, cfg.LeetCodeUser, client))
	}
	if cfg.CodeforcesHandle != "" {
		adapters = append(adapters, NewCodeforces(cfg.CodeforcesAPIBase, cfg.CodeforcesHandle, client))
	}
	for i, a := range adapters {
		adapters[i] = WithBreaker(a, logger)
	}

	return &Fetcher{
		Adapters: adapters,
		Timeout:  cfg.FetchTimeout(),
		Logger:   logger,
		Metrics:  m,
	}
}

// Fetch runs every adapter concurrently and returns one Result per adapter,
// in adapter order. Failures are reported in Result.Err, never returned.
func (f *Fetcher) Fetch(ctx context.Context) []Result {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, len(f.Adapters))
	var g errgroup.Group
	for i, a := range f.Adapters {
		g.Go(func() error {
			fctx := ctx
			if f.Timeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(ctx, f.Timeout)
				defer cancel()
			}

			start := time.Now()
			records, err := a.Fetch(fctx)
			elapsed := time.Since(start)

			provider := string(a.Provider())
			if err != nil {
				logger.Warn("activity fetch failed",
					zap.String("provider", provider),
					zap.Duration("elapsed", elapsed),
					zap.Error(err))
				f.Metrics.ObserveFetch(provider, outcome(err), elapsed, 0)
				records = nil
			} else {
				logger.Debug("activity fetched",
					zap.String("provider", provider),
					zap.Int("days", len(records)),
					zap.Duration("elapsed", elapsed))
				f.Metrics.ObserveFetch(provider, metrics.OutcomeOK, elapsed, len(records))
			}

			results[i] = Result{Provider: a.Provider(), Records: records, Err: err, Duration: elapsed}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// FetchAll fetches every provider and returns the raw input for
// activity.Aggregate. A failed provider contributes an empty series.
func (f *Fetcher) FetchAll(ctx context.Context) activity.Input {
	return ToInput(f.Fetch(ctx))
}

// ToInput collects successful results into an activity.Input.
func ToInput(results []Result) activity.Input {
	in := make(activity.Input, len(results))
	for _, r := range results {
		if r.Err != nil {
			in[r.Provider] = []activity.Record{}
			continue
		}
		in[r.Provider] = r.Records
	}
	return in
}
