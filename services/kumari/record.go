package kumari

import (
	"nepjobs-backend/lib/jobstore"
	"nepjobs-backend/lib/textutil"
)

// Record is the in-memory accumulation of a posting's fields across
// extraction passes, identified by the source-native job id. fields
// start as placeholders and are filled in monotonically.
type Record struct {
	JobID            string
	Title            string
	Company          string
	Link             string
	Salary           string
	Experience       string
	Industry         string
	JobLevel         string
	Education        string
	DesiredCandidate string
}

// Merge fills r's placeholder fields from incoming. a field already
// holding a non-placeholder value is never overwritten, so when two
// passes disagree the first writer wins. that ambiguity is carried
// over from the source behavior on purpose: conflicts are neither
// detected nor logged.
func (r Record) Merge(incoming Record) Record {
	fill(&r.Title, incoming.Title)
	fill(&r.Company, incoming.Company)
	fill(&r.Link, incoming.Link)
	fill(&r.Salary, incoming.Salary)
	fill(&r.Experience, incoming.Experience)
	fill(&r.Industry, incoming.Industry)
	fill(&r.JobLevel, incoming.JobLevel)
	fill(&r.Education, incoming.Education)
	fill(&r.DesiredCandidate, incoming.DesiredCandidate)
	return r
}

func fill(dst *string, src string) {
	if textutil.IsPlaceholder(*dst) && !textutil.IsPlaceholder(src) {
		*dst = src
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (r Record) toRow() jobstore.KumariRow {
	return jobstore.KumariRow{
		JobID:            r.JobID,
		Title:            orNA(r.Title),
		Company:          orNA(r.Company),
		Link:             orNA(r.Link),
		Salary:           orNA(r.Salary),
		Experience:       orNA(r.Experience),
		Industry:         orNA(r.Industry),
		JobLevel:         orNA(r.JobLevel),
		Education:        orNA(r.Education),
		DesiredCandidate: orNA(r.DesiredCandidate),
	}
}

// Accumulator collects the records of one ingestion run, merging
// records that share a job id. it is scoped to a single run and never
// shared across runs.
type Accumulator struct {
	order []string
	byID  map[string]Record
}

func NewAccumulator() *Accumulator {
	return &Accumulator{byID: map[string]Record{}}
}

func (a *Accumulator) Add(rec Record) {
	existing, ok := a.byID[rec.JobID]
	if !ok {
		a.order = append(a.order, rec.JobID)
		a.byID[rec.JobID] = rec
		return
	}
	a.byID[rec.JobID] = existing.Merge(rec)
}

// Records returns the accumulated records in first-seen order.
func (a *Accumulator) Records() []Record {
	out := make([]Record, len(a.order))
	for i, id := range a.order {
		out[i] = a.byID[id]
	}
	return out
}
