// Package services orchestrates the dashboard pipeline: load the four
// domain tables from the workbook, run the aggregation stages, assemble the
// chart bundles, and optionally persist a snapshot and announce the refresh.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"sharptoken/internal/amqp"
	"sharptoken/internal/charts"
	"sharptoken/internal/core"
	"sharptoken/internal/log"
	"sharptoken/internal/storage"
	"sharptoken/internal/workbook"
)

// ErrNoStore reports that snapshot history was requested but no snapshot
// repository is configured.
var ErrNoStore = errors.New("no snapshot store configured")

// ReportService runs the aggregation pipeline. The snapshot store and the
// AMQP client are optional; a nil store skips persistence and a nil client
// skips notifications.
type ReportService struct {
	source workbook.TableReader
	store  *storage.SnapshotRepository
	bus    *amqp.Client
	logger *log.Logger
}

func NewReportService(source workbook.TableReader, store *storage.SnapshotRepository, bus *amqp.Client, logger *log.Logger) *ReportService {
	if logger == nil {
		logger = log.New(slog.LevelInfo)
	}
	return &ReportService{
		source: source,
		store:  store,
		bus:    bus,
		logger: logger.WithComponent(log.ComponentPipeline),
	}
}

// BuildDashboard loads every domain table, runs the pipeline and assembles
// the bundle set. Any missing table is fatal: the charts cross-reference
// each other's totals, so a partial dashboard is never produced.
func (s *ReportService) BuildDashboard(ctx context.Context) (*charts.Dashboard, error) {
	results, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	return charts.Assemble(results)
}

// Refresh rebuilds the dashboard and, when configured, persists a snapshot
// and publishes a refresh notification. Persistence failures are fatal;
// notification failures are logged and swallowed, a refresh is never rolled
// back because the message could not be sent.
func (s *ReportService) Refresh(ctx context.Context) (*charts.Dashboard, error) {
	results, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	dashboard, err := charts.Assemble(results)
	if err != nil {
		return nil, err
	}

	if s.store == nil {
		return dashboard, nil
	}

	snap := snapshotFromResults(dashboard.GeneratedAt, results)
	id, err := s.store.SaveSnapshot(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("persist snapshot: %w", err)
	}
	s.logger.InfoContext(ctx, "Snapshot persisted", log.FieldSnapshotID, id)

	if s.bus != nil {
		msg := amqp.NewSnapshotRefreshedMessage(id, dashboard.GeneratedAt)
		for domain, r := range results {
			msg.Domains[string(domain)] = amqp.DomainFigures{
				Records:         len(r.Dataset.Records),
				RowsDropped:     r.Dataset.Dropped,
				GrandTotalMilli: r.Totals.Grand.Milli,
			}
		}
		if err := s.bus.PublishSnapshotRefreshed(ctx, msg); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish refresh message",
				log.FieldSnapshotID, id, log.FieldError, err)
		}
	}
	return dashboard, nil
}

// History returns the most recent persisted snapshots, newest first.
func (s *ReportService) History(ctx context.Context, limit int) ([]storage.Snapshot, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.ListSnapshots(ctx, limit)
}

// collect fans out over the four independent domains. The stages are pure
// functions over immutable inputs, so the only coordination needed is the
// errgroup itself; the first failure cancels the rest.
func (s *ReportService) collect(ctx context.Context) (map[core.Domain]charts.DomainResult, error) {
	results := make([]charts.DomainResult, len(core.DomainSpecs))

	g, ctx := errgroup.WithContext(ctx)
	for i, spec := range core.DomainSpecs {
		i, spec := i, spec
		g.Go(func() error {
			r, err := s.buildDomain(ctx, spec)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byDomain := make(map[core.Domain]charts.DomainResult, len(results))
	for _, r := range results {
		byDomain[r.Domain] = r
	}
	return byDomain, nil
}

func (s *ReportService) buildDomain(ctx context.Context, spec core.TableSpec) (charts.DomainResult, error) {
	tbl, err := s.source.ReadTable(ctx, spec.Sheet)
	if err != nil {
		return charts.DomainResult{}, fmt.Errorf("load %s table: %w", spec.Domain, err)
	}

	ds, err := core.BuildDataset(tbl, spec)
	if err != nil {
		return charts.DomainResult{}, fmt.Errorf("build %s dataset: %w", spec.Domain, err)
	}
	if ds.Dropped > 0 {
		s.logger.WarnContext(ctx, "Rows dropped for unparsable dates",
			log.FieldDomain, string(spec.Domain),
			log.FieldSheet, spec.Sheet,
			log.FieldRowsDropped, ds.Dropped)
	}

	filtered := ds.Window(spec.Cutoff, spec.CutoffExclusive)
	buckets := core.AggregateMonthly(filtered)

	s.logger.InfoContext(ctx, "Domain aggregated",
		log.FieldDomain, string(spec.Domain),
		log.FieldRecords, len(filtered.Records),
		log.FieldCategories, len(filtered.Categories),
		log.FieldBuckets, len(buckets))

	return charts.DomainResult{
		Domain:   spec.Domain,
		Dataset:  filtered,
		Buckets:  buckets,
		Totals:   core.Totals(buckets, filtered.Categories),
		Lifetime: core.Totals(core.AggregateMonthly(ds), ds.Categories),
	}, nil
}

// snapshotFromResults flattens the pipeline outputs into storage rows.
func snapshotFromResults(takenAt time.Time, results map[core.Domain]charts.DomainResult) storage.Snapshot {
	snap := storage.Snapshot{TakenAt: takenAt}
	for _, spec := range core.DomainSpecs {
		r := results[spec.Domain]
		d := storage.DomainSnapshot{
			Domain:      string(r.Domain),
			Records:     len(r.Dataset.Records),
			RowsDropped: r.Dataset.Dropped,
			GrandMilli:  r.Totals.Grand.Milli,
		}
		for _, ct := range r.Totals.ByCategory {
			d.Categories = append(d.Categories, storage.CategoryTotalRow{Category: ct.Category, Milli: ct.Total.Milli})
		}
		for _, mt := range r.Totals.ByMonth {
			d.Months = append(d.Months, storage.MonthTotalRow{Month: mt.Month.Format("2006-01"), Milli: mt.Total.Milli})
		}
		snap.Domains = append(snap.Domains, d)
	}
	return snap
}
