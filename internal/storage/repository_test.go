package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SnapshotRepository {
	t.Helper()
	repo, err := NewSnapshotRepository(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("NewSnapshotRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndListSnapshots(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	snap := Snapshot{
		TakenAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
		Domains: []DomainSnapshot{
			{
				Domain:      "wallets",
				Records:     3,
				RowsDropped: 1,
				GrandMilli:  12000,
				Categories: []CategoryTotalRow{
					{Category: "Android", Milli: 5000},
					{Category: "iOS", Milli: 1000},
					{Category: "Web", Milli: 6000},
				},
				Months: []MonthTotalRow{
					{Month: "2025-01", Milli: 7000},
					{Month: "2025-02", Milli: 5000},
				},
			},
			{Domain: "fees", Records: 2, GrandMilli: 4000},
		},
	}

	id, err := repo.SaveSnapshot(ctx, snap)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero snapshot id")
	}

	if _, err := repo.SaveSnapshot(ctx, Snapshot{Domains: []DomainSnapshot{{Domain: "tokens"}}}); err != nil {
		t.Fatalf("second SaveSnapshot: %v", err)
	}

	snaps, err := repo.ListSnapshots(ctx, 10)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(snaps))
	}
	// Newest first.
	if snaps[0].ID <= snaps[1].ID {
		t.Fatalf("expected newest first, got ids %d, %d", snaps[0].ID, snaps[1].ID)
	}

	old := snaps[1]
	if !old.TakenAt.Equal(snap.TakenAt) {
		t.Fatalf("taken_at = %v, want %v", old.TakenAt, snap.TakenAt)
	}
	if len(old.Domains) != 2 {
		t.Fatalf("domains = %d, want 2", len(old.Domains))
	}
	// Domains come back alphabetical.
	if old.Domains[0].Domain != "fees" || old.Domains[1].Domain != "wallets" {
		t.Fatalf("domain order = %+v", old.Domains)
	}
	if old.Domains[1].GrandMilli != 12000 || old.Domains[1].RowsDropped != 1 {
		t.Fatalf("wallets row = %+v", old.Domains[1])
	}
}

func TestListSnapshotsRespectsLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := repo.SaveSnapshot(ctx, Snapshot{}); err != nil {
			t.Fatalf("SaveSnapshot %d: %v", i, err)
		}
	}
	snaps, err := repo.ListSnapshots(ctx, 3)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("snapshots = %d, want 3", len(snaps))
	}
}
