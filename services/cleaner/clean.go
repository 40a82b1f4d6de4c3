package cleaner

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"nepjobs-backend/lib/jobstore"
	"nepjobs-backend/lib/textutil"
)

// serialization formats of the canonical table. absent values are
// written as empty string, not null, and consumers depend on that.
const (
	DeadlineLayout  = "2006-01-02"
	ScrapedAtLayout = "2006-01-02 15:04:05"
)

// abbreviations seen in the wild, mapped to standard city names. keys
// are matched case-sensitively; unmapped values pass through.
var locationMapping = map[string]string{
	"KTM": "Kathmandu", "Ktm": "Kathmandu", "ktm": "Kathmandu",
	"Kathmandu Valley": "Kathmandu",
	"PKR": "Pokhara", "PKR.": "Pokhara", "Pkr": "Pokhara",
	"BKT": "Bhaktapur", "Bkt": "Bhaktapur",
	"LLT": "Lalitpur", "Llt": "Lalitpur", "Patan": "Lalitpur",
	"BRT": "Birgunj", "BTW": "Butwal",
}

func CleanLocation(loc string) string {
	loc = strings.TrimSpace(loc)
	if textutil.IsPlaceholder(loc) {
		return "Unknown"
	}
	if mapped, ok := locationMapping[loc]; ok {
		return mapped
	}
	return loc
}

var jobLevelKeywords = []struct {
	level    string
	keywords []string
}{
	{"Entry Level", []string{"entry", "junior", "fresher", "fresh", "graduate"}},
	{"Mid Level", []string{"mid", "intermediate", "associate"}},
	{"Senior Level", []string{"senior", "sr.", "lead", "principal"}},
	{"Management", []string{"manager", "head", "director", "vp", "chief", "ceo", "cto"}},
}

// maps free-text job levels onto 5 standard categories. keyword checks
// run before the placeholder check, and anything uncategorizable falls
// through title-cased.
func StandardizeJobLevel(level string) string {
	lower := strings.ToLower(level)
	for _, group := range jobLevelKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.level
			}
		}
	}
	if textutil.IsPlaceholder(level) || strings.TrimSpace(lower) == "not specified" {
		return "Not Specified"
	}
	return textutil.TitleCase(strings.TrimSpace(level))
}

var numberRuns = regexp.MustCompile(`[\d,]+`)

// pulls salary bounds out of free text like "Nrs. 20,000 - 30,000".
// the first digit run is the minimum, the second the maximum; text
// with no digit runs ("Negotiable") yields neither.
func ExtractSalaryRange(salary string) (min, max *float64) {
	runs := numberRuns.FindAllString(salary, -1)
	if len(runs) > 0 {
		min = parseAmount(runs[0])
	}
	if len(runs) > 1 {
		max = parseAmount(runs[1])
	}
	return min, max
}

// malformed runs degrade to nil rather than erroring.
func parseAmount(run string) *float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(run, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &f
}

// a raw numeric text field, nil when it isn't a number.
func parseNumericText(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatOrEmpty(s, layout string) string {
	t, ok := parseTime(s)
	if !ok {
		return ""
	}
	return t.Format(layout)
}

func cleanCompany(company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		return "Unknown Company"
	}
	return company
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// NormalizeMerojob maps raw MeroJob rows onto the canonical schema.
func NormalizeMerojob(rows []jobstore.MerojobRow) []jobstore.CleanRow {
	out := make([]jobstore.CleanRow, len(rows))
	for i, r := range rows {
		currency := r.Currency
		if currency == "" {
			currency = "NPR"
		}
		out[i] = jobstore.CleanRow{
			Source:     jobstore.SourceMerojob,
			JobID:      "mj_" + r.ID,
			Title:      textutil.TitleCase(strings.TrimSpace(r.Title)),
			Company:    cleanCompany(r.Company),
			Location:   CleanLocation(r.Location),
			Category:   orUnknown(r.Categories),
			JobLevel:   StandardizeJobLevel(r.JobLevel),
			Skills:     r.Skills,
			SalaryMin:  parseNumericText(r.SalaryMin),
			SalaryMax:  parseNumericText(r.SalaryMax),
			Currency:   currency,
			Deadline:   formatOrEmpty(r.Deadline, DeadlineLayout),
			ScrapedAt:  formatOrEmpty(r.ScrapedAt, ScrapedAtLayout),
			JobURL:     r.JobURL,
			Experience: "N/A", // the API doesn't expose these two
			Education:  "N/A",
		}
	}
	return out
}

// NormalizeKumari maps raw KumariJob rows onto the canonical schema.
// the source has no location field, its listings are overwhelmingly
// capital-based, so location is hard-assigned.
func NormalizeKumari(rows []jobstore.KumariRow) []jobstore.CleanRow {
	out := make([]jobstore.CleanRow, len(rows))
	for i, r := range rows {
		min, max := ExtractSalaryRange(r.Salary)
		out[i] = jobstore.CleanRow{
			Source:     jobstore.SourceKumari,
			JobID:      "kj_" + r.JobID,
			Title:      textutil.TitleCase(strings.TrimSpace(r.Title)),
			Company:    cleanCompany(r.Company),
			Location:   "Kathmandu",
			Category:   orUnknown(r.Industry),
			JobLevel:   StandardizeJobLevel(r.JobLevel),
			Skills:     "",
			SalaryMin:  min,
			SalaryMax:  max,
			Currency:   "NPR",
			Deadline:   "",
			ScrapedAt:  formatOrEmpty(r.ScrapedAt, ScrapedAtLayout),
			JobURL:     r.Link,
			Experience: orNA(r.Experience),
			Education:  orNA(r.Education),
		}
	}
	return out
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
