package commands

import (
	"log/slog"
	"time"

	"nepjobs-backend/lib/jobstore"
	"nepjobs-backend/lib/serviceutil"
	"nepjobs-backend/services/kumari"
	"nepjobs-backend/services/merojob"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:       "ingest <merojob|kumarijob>",
	Short:     "Scrapes one source and appends the raw postings to the database.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{jobstore.SourceMerojob, jobstore.SourceKumari},
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()

		var count int
		var err error
		t1 := time.Now()

		switch args[0] {
		case jobstore.SourceMerojob:
			count, err = merojob.NewScraper(store, merojob.ScraperOptions{}).Scrape(cmd.Context())
		case jobstore.SourceKumari:
			var scraper *kumari.Scraper
			scraper, err = kumari.NewScraper(store, kumari.ScraperOptions{})
			if err != nil {
				serviceutil.Fatal("failed to construct scraper", err)
			}
			count, err = scraper.Scrape(cmd.Context())
		}
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}

		slog.Info("scrape complete",
			"source", args[0],
			"jobs", count,
			"seconds", time.Since(t1).Seconds(),
		)
	},
}
