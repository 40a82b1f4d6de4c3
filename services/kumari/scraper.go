package kumari

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"nepjobs-backend/lib/fetch"
	"nepjobs-backend/lib/jobstore"
	"nepjobs-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("nepjobs.services.kumari")

const browserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type ScraperOptions struct {
	// defaults to the public site
	BaseURL string
}

type Scraper struct {
	store   jobstore.Store
	client  *fetch.Client
	baseURL *url.URL
}

func NewScraper(store jobstore.Store, opts ScraperOptions) (*Scraper, error) {
	rawURL := opts.BaseURL
	if rawURL == "" {
		rawURL = "https://www.kumarijob.com/"
	}
	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	client := fetch.New(fetch.Options{
		Timeout:          time.Second * 15,
		Headers:          map[string]string{"User-Agent": browserUserAgent},
		CloudflareBypass: true,
		TracerName:       "nepjobs.services.kumari.http",
	})

	return &Scraper{
		store:   store,
		client:  client,
		baseURL: baseURL,
	}, nil
}

// Scrape runs one full ingestion pass: listing extraction, then a
// detail fetch per record with a usable link, then persistence under a
// single ingestion timestamp. returns the number of records scraped.
func (s *Scraper) Scrape(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	res, err := s.client.Get(ctx, s.baseURL.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing page")
		return 0, fmt.Errorf("fetching listing page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse listing page")
		return 0, fmt.Errorf("parsing listing page: %w", err)
	}

	records := ExtractCards(doc, s.baseURL).Records()
	slog.InfoContext(ctx, "listing pass complete", "source", jobstore.SourceKumari, "unique_jobs", len(records))

	for i, rec := range records {
		if textutil.IsPlaceholder(rec.Link) {
			continue
		}
		s.client.Pause()

		details, ok := s.scrapeDetail(ctx, rec.Link)
		if !ok {
			continue
		}
		records[i] = rec.Merge(details.record(rec.JobID))
	}

	rows := make([]jobstore.KumariRow, len(records))
	for i, rec := range records {
		rows[i] = rec.toRow()
	}
	_, err = s.store.InsertKumariRows(ctx, rows, time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist records")
		return 0, fmt.Errorf("persisting records: %w", err)
	}

	span.SetAttributes(attribute.Int("jobs.count", len(records)))
	return len(records), nil
}

// fetches and parses one detail page. failures degrade to "no
// supplementary fields" and never abort the run.
func (s *Scraper) scrapeDetail(ctx context.Context, link string) (Details, bool) {
	res, err := s.client.Get(ctx, link)
	if err != nil {
		slog.WarnContext(ctx, "skipping detail page", "url", link, "err", err)
		return Details{}, false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		slog.WarnContext(ctx, "failed to parse detail page", "url", link, "err", err)
		return Details{}, false
	}

	return ExtractDetails(doc), true
}
