package jobstore

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const (
	SourceMerojob = "merojob"
	SourceKumari  = "kumarijob"
)

// the timestamp format of the scraped_at column in the raw tables.
const RawTimeLayout = time.RFC3339

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// one raw MeroJob posting, every field as extracted text.
type MerojobRow struct {
	ID         string
	Title      string
	Company    string
	Location   string
	Categories string
	Deadline   string
	JobLevel   string
	Vacancies  string
	SalaryMin  string
	SalaryMax  string
	Currency   string
	Skills     string
	JobURL     string
	ScrapedAt  string
}

// one raw KumariJob posting.
type KumariRow struct {
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
	ScrapedAt        string
}

// one row of the canonical jobs_clean table.
type CleanRow struct {
	Source     string
	JobID      string
	Title      string
	Company    string
	Location   string
	Category   string
	JobLevel   string
	Skills     string
	SalaryMin  *float64
	SalaryMax  *float64
	Currency   string
	Deadline   string
	ScrapedAt  string
	JobURL     string
	Experience string
	Education  string
	ScrapeDate string
}

// appends raw MeroJob rows under the given ingestion timestamp,
// silently skipping natural-key collisions. returns the number of rows
// actually inserted.
func (s Store) InsertMerojobRows(ctx context.Context, rows []MerojobRow, scrapedAt time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	at := scrapedAt.Format(RawTimeLayout)
	inserted := 0
	for _, r := range rows {
		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO merojob_raw
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			r.ID, r.Title, r.Company, r.Location, r.Categories, r.Deadline,
			r.JobLevel, r.Vacancies, r.SalaryMin, r.SalaryMax, r.Currency,
			r.Skills, r.JobURL, at,
		)
		if err != nil {
			return inserted, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}
	return inserted, tx.Commit()
}

// same as InsertMerojobRows, for KumariJob.
func (s Store) InsertKumariRows(ctx context.Context, rows []KumariRow, scrapedAt time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	at := scrapedAt.Format(RawTimeLayout)
	inserted := 0
	for _, r := range rows {
		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO kumari_raw
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			r.JobID, r.Title, r.Company, r.Link, r.Salary, r.Experience,
			r.Industry, r.JobLevel, r.Education, r.DesiredCandidate, at,
		)
		if err != nil {
			return inserted, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}
	return inserted, tx.Commit()
}

func (s Store) ListMerojobRows(ctx context.Context) ([]MerojobRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, company, location, categories, deadline,
		       job_level, vacancies, salary_min, salary_max, currency,
		       skills, job_url, scraped_at
		FROM merojob_raw`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MerojobRow
	for rows.Next() {
		var r MerojobRow
		err := rows.Scan(
			&r.ID, &r.Title, &r.Company, &r.Location, &r.Categories,
			&r.Deadline, &r.JobLevel, &r.Vacancies, &r.SalaryMin,
			&r.SalaryMax, &r.Currency, &r.Skills, &r.JobURL, &r.ScrapedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s Store) ListKumariRows(ctx context.Context) ([]KumariRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT job_id, job_title, company, link, salary, experience,
		       industry, job_level, education, desired_candidate, scraped_at
		FROM kumari_raw`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KumariRow
	for rows.Next() {
		var r KumariRow
		err := rows.Scan(
			&r.JobID, &r.Title, &r.Company, &r.Link, &r.Salary,
			&r.Experience, &r.Industry, &r.JobLevel, &r.Education,
			&r.DesiredCandidate, &r.ScrapedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// replaces the canonical table wholesale with the given rows. a
// reconciliation pass rebuilds from current raw data, it never merges
// into the previous table.
func (s Store) ReplaceClean(ctx context.Context, rows []CleanRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM jobs_clean`)
	if err != nil {
		return err
	}

	for _, r := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO jobs_clean
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			r.Source, r.JobID, r.Title, r.Company, r.Location, r.Category,
			r.JobLevel, r.Skills, r.SalaryMin, r.SalaryMax, r.Currency,
			r.Deadline, r.ScrapedAt, r.JobURL, r.Experience, r.Education,
			r.ScrapeDate,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) ListCleanRows(ctx context.Context) ([]CleanRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, job_id, title, company, location, category,
		       job_level, skills, salary_min, salary_max, currency,
		       deadline, scraped_at, job_url, experience, education,
		       scrape_date
		FROM jobs_clean`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CleanRow
	for rows.Next() {
		var r CleanRow
		var smin, smax sql.NullFloat64
		err := rows.Scan(
			&r.Source, &r.JobID, &r.Title, &r.Company, &r.Location,
			&r.Category, &r.JobLevel, &r.Skills, &smin, &smax,
			&r.Currency, &r.Deadline, &r.ScrapedAt, &r.JobURL,
			&r.Experience, &r.Education, &r.ScrapeDate,
		)
		if err != nil {
			return nil, err
		}
		if smin.Valid {
			r.SalaryMin = &smin.Float64
		}
		if smax.Valid {
			r.SalaryMax = &smax.Float64
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// a (label, row count) aggregate over one canonical column.
type GroupCount struct {
	Label string
	Count int64
}

var groupColumns = map[string]string{
	"category":  "category",
	"location":  "location",
	"job_level": "job_level",
	"source":    "source",
}

func (s Store) GroupCounts(ctx context.Context, column string) ([]GroupCount, error) {
	col, ok := groupColumns[column]
	if !ok {
		return nil, sql.ErrNoRows
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+col+`, COUNT(*) AS n
		FROM jobs_clean
		GROUP BY `+col+`
		ORDER BY n DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GroupCount
	for rows.Next() {
		var g GroupCount
		if err := rows.Scan(&g.Label, &g.Count); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

type SalaryStats struct {
	Count int64
	Min   float64
	Avg   float64
	Max   float64
}

func (s Store) SalaryStats(ctx context.Context) (SalaryStats, error) {
	var stats SalaryStats
	var min, avg, max sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(salary_min), MIN(salary_min), AVG(salary_min), MAX(salary_max)
		FROM jobs_clean
		WHERE salary_min IS NOT NULL`).Scan(&stats.Count, &min, &avg, &max)
	if err != nil {
		return stats, err
	}
	stats.Min = min.Float64
	stats.Avg = avg.Float64
	stats.Max = max.Float64
	return stats, nil
}
