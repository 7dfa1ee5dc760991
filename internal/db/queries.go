package db

import (
	"database/sql"
	stderrors "errors"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/errors"
)

// Snapshot is one stored provider fetch.
type Snapshot struct {
	ID        string
	Provider  activity.Provider
	FetchedAt int64 // unix seconds
	Records   []activity.Record
}

// InsertSnapshot stores a snapshot and its days in one transaction.
// Levels are not stored; they are recomputed on read.
func InsertSnapshot(db *sql.DB, s *Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO snapshots (id, provider, fetched_at, days) VALUES (?, ?, ?, ?)`,
		s.ID, string(s.Provider), s.FetchedAt, len(s.Records),
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	stmt, err := tx.Prepare(`INSERT INTO snapshot_days (snapshot_id, date, count) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer stmt.Close()

	for _, r := range s.Records {
		if _, err := stmt.Exec(s.ID, r.Date, r.Count); err != nil {
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot for provider, days sorted by date.
// Returns NOT_FOUND if the provider has never been stored.
func LatestSnapshot(db *sql.DB, provider activity.Provider) (*Snapshot, error) {
	s := &Snapshot{Provider: provider}
	err := db.QueryRow(`
		SELECT id, fetched_at
		FROM snapshots
		WHERE provider = ?
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1
	`, string(provider)).Scan(&s.ID, &s.FetchedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFound("snapshot", string(provider))
		}
		return nil, errors.NewInternal(err)
	}

	rows, err := db.Query(`
		SELECT date, count
		FROM snapshot_days
		WHERE snapshot_id = ?
		ORDER BY date
	`, s.ID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	s.Records = []activity.Record{}
	for rows.Next() {
		var r activity.Record
		if err := rows.Scan(&r.Date, &r.Count); err != nil {
			return nil, errors.NewInternal(err)
		}
		s.Records = append(s.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return s, nil
}

// SnapshotInfo summarizes a stored snapshot without its days.
type SnapshotInfo struct {
	ID        string            `json:"id"`
	Provider  activity.Provider `json:"provider"`
	FetchedAt int64             `json:"fetched_at"`
	Days      int               `json:"days"`
}

// ListSnapshots returns every stored snapshot, newest first.
func ListSnapshots(db *sql.DB) ([]SnapshotInfo, error) {
	rows, err := db.Query(`
		SELECT id, provider, fetched_at, days
		FROM snapshots
		ORDER BY fetched_at DESC, id DESC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	out := []SnapshotInfo{}
	for rows.Next() {
		var info SnapshotInfo
		var provider string
		if err := rows.Scan(&info.ID, &provider, &info.FetchedAt, &info.Days); err != nil {
			return nil, errors.NewInternal(err)
		}
		info.Provider = activity.Provider(provider)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// PruneSnapshots keeps the newest keep snapshots per provider and deletes the rest.
// Returns the number of snapshots deleted. keep < 1 is treated as 1.
func PruneSnapshots(db *sql.DB, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}

	res, err := db.Exec(`
		DELETE FROM snapshots
		WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY provider ORDER BY fetched_at DESC, id DESC
				) AS rn
				FROM snapshots
			)
			WHERE rn > ?
		)
	`, keep)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}
