// Package storage persists dashboard snapshots to SQLite so refreshes leave
// a queryable history of the workbook's totals over time.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type (
	// CategoryTotalRow is one persisted per-category total.
	CategoryTotalRow struct {
		Category string
		Milli    int64
	}

	// MonthTotalRow is one persisted per-month total; Month is "2006-01".
	MonthTotalRow struct {
		Month string
		Milli int64
	}

	// DomainSnapshot records one domain's aggregates at refresh time.
	DomainSnapshot struct {
		Domain      string
		Records     int
		RowsDropped int
		GrandMilli  int64
		Categories  []CategoryTotalRow
		Months      []MonthTotalRow
	}

	// Snapshot is one full refresh of the dashboard.
	Snapshot struct {
		ID      int64
		TakenAt time.Time
		Domains []DomainSnapshot
	}

	SnapshotRepository struct {
		db *sql.DB
	}
)

func NewSnapshotRepository(dbPath string) (*SnapshotRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SnapshotRepository{db: db}, nil
}

func (r *SnapshotRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveSnapshot writes one refresh atomically and returns its ID.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snap Snapshot) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	takenAt := snap.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (taken_at) VALUES (?)`,
		takenAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("snapshot id: %w", err)
	}

	for _, d := range snap.Domains {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_domains (snapshot_id, domain, records, rows_dropped, grand_total_milli)
			 VALUES (?, ?, ?, ?, ?)`,
			id, d.Domain, d.Records, d.RowsDropped, d.GrandMilli); err != nil {
			return 0, fmt.Errorf("insert domain %s: %w", d.Domain, err)
		}
		for pos, ct := range d.Categories {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO snapshot_category_totals (snapshot_id, domain, position, category, total_milli)
				 VALUES (?, ?, ?, ?, ?)`,
				id, d.Domain, pos, ct.Category, ct.Milli); err != nil {
				return 0, fmt.Errorf("insert category total %s/%s: %w", d.Domain, ct.Category, err)
			}
		}
		for _, mt := range d.Months {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO snapshot_month_totals (snapshot_id, domain, month, total_milli)
				 VALUES (?, ?, ?, ?)`,
				id, d.Domain, mt.Month, mt.Milli); err != nil {
				return 0, fmt.Errorf("insert month total %s/%s: %w", d.Domain, mt.Month, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit snapshot: %w", err)
	}
	return id, nil
}

// ListSnapshots returns the most recent snapshots, newest first, with their
// per-domain grand totals. Category and month detail stays in the database;
// the history endpoint only needs the headline numbers.
func (r *SnapshotRepository) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, taken_at FROM snapshots ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var takenAt string
		if err := rows.Scan(&snap.ID, &takenAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, takenAt); err == nil {
			snap.TakenAt = t
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	for i := range snaps {
		domains, err := r.snapshotDomains(ctx, snaps[i].ID)
		if err != nil {
			return nil, err
		}
		snaps[i].Domains = domains
	}
	return snaps, nil
}

func (r *SnapshotRepository) snapshotDomains(ctx context.Context, id int64) ([]DomainSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT domain, records, rows_dropped, grand_total_milli
		 FROM snapshot_domains WHERE snapshot_id = ? ORDER BY domain`, id)
	if err != nil {
		return nil, fmt.Errorf("list snapshot domains: %w", err)
	}
	defer rows.Close()

	var domains []DomainSnapshot
	for rows.Next() {
		var d DomainSnapshot
		if err := rows.Scan(&d.Domain, &d.Records, &d.RowsDropped, &d.GrandMilli); err != nil {
			return nil, fmt.Errorf("scan snapshot domain: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, rows.Err()
}
