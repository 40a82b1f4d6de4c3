// Package pipeline stitches the source scrapers and the cleaning pass
// into one orchestrated run over a shared store.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"nepjobs-backend/lib/jobstore"
	"nepjobs-backend/services/cleaner"
	"nepjobs-backend/services/kumari"
	"nepjobs-backend/services/merojob"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("nepjobs.services.pipeline")

type Options struct {
	Merojob merojob.ScraperOptions
	Kumari  kumari.ScraperOptions
}

type Pipeline struct {
	store   jobstore.Store
	merojob *merojob.Scraper
	kumari  *kumari.Scraper
}

func New(store jobstore.Store, opts Options) (*Pipeline, error) {
	kumariScraper, err := kumari.NewScraper(store, opts.Kumari)
	if err != nil {
		return nil, fmt.Errorf("constructing kumarijob scraper: %w", err)
	}
	return &Pipeline{
		store:   store,
		merojob: merojob.NewScraper(store, opts.Merojob),
		kumari:  kumariScraper,
	}, nil
}

func (p *Pipeline) IngestMerojob(ctx context.Context) (int, error) {
	return p.merojob.Scrape(ctx)
}

func (p *Pipeline) IngestKumari(ctx context.Context) (int, error) {
	return p.kumari.Scrape(ctx)
}

// Reconcile rebuilds the canonical table from all raw rows currently
// stored, MeroJob first, then KumariJob. returns the number of rows the
// canonical table holds afterwards.
func (p *Pipeline) Reconcile(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "Reconcile")
	defer span.End()

	merojobRows, err := p.store.ListMerojobRows(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list merojob rows")
		return 0, fmt.Errorf("listing merojob rows: %w", err)
	}
	kumariRows, err := p.store.ListKumariRows(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list kumarijob rows")
		return 0, fmt.Errorf("listing kumarijob rows: %w", err)
	}

	rows := cleaner.NormalizeMerojob(merojobRows)
	rows = append(rows, cleaner.NormalizeKumari(kumariRows)...)
	rows = cleaner.Reconcile(rows)

	err = p.store.ReplaceClean(ctx, rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to replace canonical table")
		return 0, fmt.Errorf("replacing canonical table: %w", err)
	}

	span.SetAttributes(attribute.Int("jobs.count", len(rows)))
	return len(rows), nil
}

// aggregate counts of one full pipeline run.
type RunReport struct {
	Merojob int
	Kumari  int
	Clean   int
}

// RunAll performs ingestion from both sources followed by a
// reconciliation pass. a failed stage is logged and contributes zero to
// the report, but never blocks the remaining stages.
func (p *Pipeline) RunAll(ctx context.Context) RunReport {
	ctx, span := tracer.Start(ctx, "RunAll")
	defer span.End()

	var report RunReport
	var err error

	report.Merojob, err = p.IngestMerojob(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "merojob ingestion failed", "err", err)
	}
	report.Kumari, err = p.IngestKumari(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "kumarijob ingestion failed", "err", err)
	}
	report.Clean, err = p.Reconcile(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "reconciliation failed", "err", err)
	}

	slog.InfoContext(ctx, "pipeline run complete",
		"merojob", report.Merojob,
		"kumarijob", report.Kumari,
		"clean", report.Clean,
	)
	return report
}
