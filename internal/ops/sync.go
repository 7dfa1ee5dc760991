package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/db"
	"github.com/contributorsambhav/portfolio/internal/errors"
	"github.com/contributorsambhav/portfolio/internal/providers"
)

// Source fetches raw activity from every configured provider.
// *providers.Fetcher satisfies it.
type Source interface {
	Fetch(ctx context.Context) []providers.Result
}

// SyncInput contains parameters for the Sync operation.
type SyncInput struct {
	Keep int // snapshots kept per provider; <1 means 1
}

// SyncResult is the outcome for one provider.
type SyncResult struct {
	Provider   string `json:"provider"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	Days       int    `json:"days"`
	Error      string `json:"error,omitempty"`
}

// SyncOutput contains the result of the Sync operation.
type SyncOutput struct {
	Providers []SyncResult `json:"providers"`
	Stored    int          `json:"stored"`
	Pruned    int64        `json:"pruned"`
	FetchedAt int64        `json:"fetched_at"`
}

// Sync fetches every provider and stores a normalized snapshot for each one
// that succeeded, then prunes old snapshots. Provider failures are reported per
// provider and never fail the operation.
func Sync(ctx context.Context, database *sql.DB, src Source, input SyncInput) (*SyncOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if src == nil {
		return nil, errors.NewInvalidRequest("no activity source configured")
	}

	now := time.Now().Unix()
	out := &SyncOutput{Providers: []SyncResult{}, FetchedAt: now}

	for _, r := range src.Fetch(ctx) {
		res := SyncResult{Provider: string(r.Provider)}
		if r.Err != nil {
			res.Error = r.Err.Error()
			out.Providers = append(out.Providers, res)
			continue
		}

		id, err := generateULID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		records := activity.Normalize(r.Records)
		snap := &db.Snapshot{ID: id, Provider: r.Provider, FetchedAt: now, Records: records}
		if err := db.InsertSnapshot(database, snap); err != nil {
			res.Error = err.Error()
			out.Providers = append(out.Providers, res)
			continue
		}

		res.SnapshotID = id
		res.Days = len(records)
		out.Providers = append(out.Providers, res)
		out.Stored++
	}

	pruned, err := db.PruneSnapshots(database, input.Keep)
	if err != nil {
		return nil, err
	}
	out.Pruned = pruned

	return out, nil
}

// SnapshotsOutput lists stored snapshots.
type SnapshotsOutput struct {
	Items []db.SnapshotInfo `json:"items"`
}

// Snapshots lists stored snapshots, newest first.
func Snapshots(database *sql.DB) (*SnapshotsOutput, error) {
	items, err := db.ListSnapshots(database)
	if err != nil {
		return nil, err
	}
	return &SnapshotsOutput{Items: items}, nil
}
