package ops

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/db"
	"github.com/contributorsambhav/portfolio/internal/errors"
)

// ActivityInput contains parameters for the Activity operation.
type ActivityInput struct {
	Refresh  bool          // always sync before reading
	AutoSync bool          // sync when the newest snapshot is older than TTL
	TTL      time.Duration // staleness threshold for AutoSync
	Keep     int           // snapshots kept per provider when syncing
}

// ActivityOutput holds the levelled series plus per-series totals.
type ActivityOutput struct {
	activity.Output
	Totals    map[activity.Provider]int   `json:"totals"`
	FetchedAt map[activity.Provider]int64 `json:"fetched_at"`
	Synced    bool                        `json:"synced"`
}

// Activity aggregates the latest stored snapshot of every provider.
// A provider without a snapshot contributes an empty series. src may be nil
// when no sync is possible.
func Activity(ctx context.Context, database *sql.DB, src Source, input ActivityInput) (*ActivityOutput, error) {
	snaps, err := latestSnapshots(database)
	if err != nil {
		return nil, err
	}

	synced := false
	if src != nil && (input.Refresh || (input.AutoSync && stale(snaps, input.TTL, time.Now()))) {
		if err := sharedSync(ctx, database, src, input.Keep); err != nil {
			return nil, err
		}
		synced = true
		if snaps, err = latestSnapshots(database); err != nil {
			return nil, err
		}
	}

	in := make(activity.Input, len(activity.Providers))
	fetchedAt := make(map[activity.Provider]int64, len(snaps))
	for p, s := range snaps {
		in[p] = s.Records
		fetchedAt[p] = s.FetchedAt
	}

	out := activity.Aggregate(in)
	totals := make(map[activity.Provider]int, len(activity.Providers)+1)
	for _, p := range activity.Providers {
		totals[p] = activity.Total(out.Series(p))
	}
	totals[activity.Combined] = activity.Total(out.Combined)

	return &ActivityOutput{
		Output:    out,
		Totals:    totals,
		FetchedAt: fetchedAt,
		Synced:    synced,
	}, nil
}

// syncGroup collapses concurrent syncs against the same database into one.
var syncGroup singleflight.Group

// sharedSync runs Sync, joining a sync already in flight for database
// instead of starting another one.
func sharedSync(ctx context.Context, database *sql.DB, src Source, keep int) error {
	key := fmt.Sprintf("sync:%p", database)
	_, err, _ := syncGroup.Do(key, func() (any, error) {
		return Sync(ctx, database, src, SyncInput{Keep: keep})
	})
	return err
}

// latestSnapshots loads the newest snapshot per provider, skipping providers
// that have none.
func latestSnapshots(database *sql.DB) (map[activity.Provider]*db.Snapshot, error) {
	out := make(map[activity.Provider]*db.Snapshot, len(activity.Providers))
	for _, p := range activity.Providers {
		s, err := db.LatestSnapshot(database, p)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out[p] = s
	}
	return out, nil
}

// stale reports whether the newest snapshot is older than ttl, or there is none.
func stale(snaps map[activity.Provider]*db.Snapshot, ttl time.Duration, now time.Time) bool {
	var newest int64
	for _, s := range snaps {
		newest = max(newest, s.FetchedAt)
	}
	if newest == 0 {
		return true
	}
	return now.Sub(time.Unix(newest, 0)) > ttl
}
