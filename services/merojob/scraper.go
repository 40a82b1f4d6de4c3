package merojob

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nepjobs-backend/lib/fetch"
	"nepjobs-backend/lib/jobstore"
	"nepjobs-backend/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("nepjobs.services.merojob")

type ScraperOptions struct {
	// defaults to the public API
	APIBaseURL string
	// prefix for the relative detail links the API returns, defaults
	// to the public site
	SiteURL string
	// defaults to 50
	PageSize int
}

type Scraper struct {
	store   jobstore.Store
	client  *fetch.Client
	apiURL  string
	siteURL string
	pageSz  int
}

func NewScraper(store jobstore.Store, opts ScraperOptions) *Scraper {
	apiURL := opts.APIBaseURL
	if apiURL == "" {
		apiURL = "https://api.merojob.com"
	}
	siteURL := opts.SiteURL
	if siteURL == "" {
		siteURL = "https://www.merojob.com"
	}
	pageSz := opts.PageSize
	if pageSz == 0 {
		pageSz = 50
	}

	client := fetch.New(fetch.Options{
		Timeout: time.Second * 15,
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
			"Accept":     "application/json",
			"Referer":    "https://merojob.com/search/",
		},
		TracerName: "nepjobs.services.merojob.http",
	})

	return &Scraper{
		store:   store,
		client:  client,
		apiURL:  strings.TrimSuffix(apiURL, "/"),
		siteURL: strings.TrimSuffix(siteURL, "/"),
		pageSz:  pageSz,
	}
}

// Scrape walks the paginated jobs API following the next pointer until
// it is exhausted, then persists every posting under one ingestion
// timestamp. a page-fetch failure aborts pagination and keeps whatever
// was accumulated so far. returns the number of postings scraped.
func (s *Scraper) Scrape(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	url := fmt.Sprintf("%s/api/v1/jobs/?page=1&page_size=%d", s.apiURL, s.pageSz)
	var rows []jobstore.MerojobRow

	for url != "" {
		res, err := s.client.Get(ctx, url)
		if err != nil {
			// partial results beat total failure
			slog.WarnContext(ctx, "aborting pagination", "url", url, "err", err)
			span.RecordError(err)
			break
		}

		var page jobsPage
		if err := json.Unmarshal(res.Body(), &page); err != nil {
			slog.WarnContext(ctx, "aborting pagination on malformed page", "url", url, "err", err)
			span.RecordError(err)
			break
		}

		for _, job := range page.Results {
			rows = append(rows, s.toRow(job))
		}
		slog.InfoContext(ctx, "fetched listing page", "source", jobstore.SourceMerojob, "jobs_so_far", len(rows))

		url = page.Next
	}

	if len(rows) == 0 {
		slog.WarnContext(ctx, "no jobs found", "source", jobstore.SourceMerojob)
		return 0, nil
	}

	_, err := s.store.InsertMerojobRows(ctx, rows, time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist records")
		return 0, fmt.Errorf("persisting records: %w", err)
	}

	span.SetAttributes(attribute.Int("jobs.count", len(rows)))
	return len(rows), nil
}

func (s *Scraper) toRow(job apiJob) jobstore.MerojobRow {
	// the API exposes a location in two places, prefer the client's
	location := job.Client.Location
	if textutil.IsPlaceholder(location) && len(job.JobLocations) > 0 {
		location = job.JobLocations[0].Address
	}

	row := jobstore.MerojobRow{
		ID:         orNA(job.ID.String()),
		Title:      orNA(job.Title),
		Company:    orNA(job.Client.ClientName),
		Location:   orNA(location),
		Categories: strings.Join(job.Categories, ", "),
		Deadline:   orNA(job.Deadline),
		JobLevel:   orNA(job.JobLevel),
		Vacancies:  orNA(job.Vacancies.String()),
		SalaryMin:  "N/A",
		SalaryMax:  "N/A",
		Currency:   "N/A",
		Skills:     strings.Join(job.Skills, ", "),
		JobURL:     s.siteURL + job.AbsoluteURL,
	}
	if job.OfferedSalary != nil {
		row.SalaryMin = orNA(job.OfferedSalary.Minimum.String())
		row.SalaryMax = orNA(job.OfferedSalary.Maximum.String())
		row.Currency = orNA(job.OfferedSalary.Currency)
	}
	return row
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
