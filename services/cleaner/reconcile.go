package cleaner

import (
	"strings"

	"nepjobs-backend/lib/jobstore"
)

// salary values above this are treated as data-entry errors and
// nulled, not real pay.
const salaryCap = 10_000_000

type dedupKey struct {
	title   string
	company string
	source  string
}

// Reconcile applies the quality gates to the concatenated normalized
// rows and returns the final canonical table. the gates run in a fixed
// order: title gate, duplicate removal keeping the first occurrence,
// salary outlier capping, scrape-date derivation. deterministic: the
// same input always yields the same output.
func Reconcile(rows []jobstore.CleanRow) []jobstore.CleanRow {
	out := make([]jobstore.CleanRow, 0, len(rows))
	seen := map[dedupKey]bool{}

	for _, r := range rows {
		title := strings.TrimSpace(r.Title)
		if title == "" || r.Title == "N/A" {
			continue
		}

		key := dedupKey{title: r.Title, company: r.Company, source: r.Source}
		if seen[key] {
			continue
		}
		seen[key] = true

		if r.SalaryMin != nil && *r.SalaryMin > salaryCap {
			r.SalaryMin = nil
		}
		if r.SalaryMax != nil && *r.SalaryMax > salaryCap {
			r.SalaryMax = nil
		}

		// date-only grouping field for downstream aggregation
		if len(r.ScrapedAt) >= len(DeadlineLayout) {
			r.ScrapeDate = r.ScrapedAt[:len(DeadlineLayout)]
		}

		out = append(out, r)
	}

	return out
}
