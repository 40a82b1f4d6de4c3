package merojob

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nepjobs-backend/lib/jobstore"
	"nepjobs-backend/lib/jobstore/db"
	"nepjobs-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

func pageOne(serverURL string) string {
	return fmt.Sprintf(`{
		"results": [
			{
				"id": 42,
				"title": "Backend Developer",
				"client": {"client_name": "Acme Pvt. Ltd.", "location": "KTM"},
				"categories": ["IT & Telecommunication"],
				"deadline": "2026-09-15",
				"job_level": "Mid Level",
				"vacancies": 2,
				"offered_salary": {"minimum": 60000, "maximum": 90000, "currency": "NPR"},
				"skills": ["Go", "SQL"],
				"absolute_url": "/jobs/backend-developer-42"
			},
			{
				"id": 43,
				"title": "Field Officer",
				"client": {"client_name": "Himal Microfinance"},
				"job_locations": [{"address": "Pokhara"}],
				"job_level": "",
				"absolute_url": "/jobs/field-officer-43"
			}
		],
		"next": "%s/api/v1/jobs/?page=2&page_size=50"
	}`, serverURL)
}

const pageTwo = `{
	"results": [
		{
			"id": 44,
			"title": "Receptionist",
			"client": {"client_name": "Everest Hotel"},
			"absolute_url": "/jobs/receptionist-44"
		}
	],
	"next": null
}`

func setupScraper(t *testing.T, handler http.HandlerFunc) (*Scraper, jobstore.Store, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "merojob",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	store := jobstore.NewStore(res.DB)
	scraper := NewScraper(store, ScraperOptions{
		APIBaseURL: server.URL,
		SiteURL:    "https://www.merojob.com",
	})
	return scraper, store, server
}

func TestScrapeFollowsPagination(t *testing.T) {
	var server *httptest.Server
	scraper, store, server := setupScraper(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(pageOne(server.URL)))
		case "2":
			w.Write([]byte(pageTwo))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	count, err := scraper.Scrape(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	rows, err := store.ListMerojobRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "42", rows[0].ID)
	require.Equal(t, "Backend Developer", rows[0].Title)
	require.Equal(t, "KTM", rows[0].Location)
	require.Equal(t, "IT & Telecommunication", rows[0].Categories)
	require.Equal(t, "60000", rows[0].SalaryMin)
	require.Equal(t, "90000", rows[0].SalaryMax)
	require.Equal(t, "NPR", rows[0].Currency)
	require.Equal(t, "Go, SQL", rows[0].Skills)
	require.Equal(t, "2026-09-15", rows[0].Deadline)
	require.Equal(t, "https://www.merojob.com/jobs/backend-developer-42", rows[0].JobURL)

	// location falls back to the first job_locations address
	require.Equal(t, "Pokhara", rows[1].Location)
	// absent salary object degrades to sentinels
	require.Equal(t, "N/A", rows[1].SalaryMin)
	require.Equal(t, "N/A", rows[1].Currency)
	// absent job level and deadline degrade to sentinels
	require.Equal(t, "N/A", rows[1].JobLevel)
	require.Equal(t, "N/A", rows[1].Deadline)

	require.Equal(t, "44", rows[2].ID)
}

func TestScrapeKeepsPartialResultsWhenAPageFails(t *testing.T) {
	var server *httptest.Server
	scraper, store, server := setupScraper(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(pageOne(server.URL)))
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	})

	ctx := context.Background()
	count, err := scraper.Scrape(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	rows, err := store.ListMerojobRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestScrapeWithNoResultsPersistsNothing(t *testing.T) {
	scraper, store, _ := setupScraper(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}, "next": nil})
	})

	ctx := context.Background()
	count, err := scraper.Scrape(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	rows, err := store.ListMerojobRows(ctx)
	require.NoError(t, err)
	require.Empty(t, rows)
}
