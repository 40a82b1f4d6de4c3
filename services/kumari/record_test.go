package kumari

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeWithSelfIsIdempotent(t *testing.T) {
	rec := Record{
		JobID:   "101",
		Title:   "Backend Developer",
		Company: "Acme Pvt. Ltd.",
		Salary:  "Nrs. 40,000",
	}
	require.Equal(t, rec, rec.Merge(rec))
}

func TestMergeFillsGapsOnly(t *testing.T) {
	existing := Record{
		JobID:      "101",
		Title:      "Backend Developer",
		Company:    "N/A",
		Salary:     "",
		Experience: "2 Years",
	}
	incoming := Record{
		JobID:      "101",
		Title:      "Senior Backend Developer",
		Company:    "Acme Pvt. Ltd.",
		Salary:     "Negotiable",
		Experience: "Fresher",
	}

	merged := existing.Merge(incoming)

	// placeholders are filled
	require.Equal(t, "Acme Pvt. Ltd.", merged.Company)
	require.Equal(t, "Negotiable", merged.Salary)
	// populated fields stay untouched: first writer wins
	require.Equal(t, "Backend Developer", merged.Title)
	require.Equal(t, "2 Years", merged.Experience)
}

func TestMergeNeverWritesPlaceholders(t *testing.T) {
	existing := Record{JobID: "101", Title: "Backend Developer"}
	for _, placeholder := range []string{"", "  ", "N/A", "n/a", "na"} {
		merged := existing.Merge(Record{JobID: "101", Title: placeholder})
		require.Equal(t, "Backend Developer", merged.Title)
	}
}

func TestAccumulatorMergesByIDInFirstSeenOrder(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(Record{JobID: "7", Title: "Accountant", Company: "N/A"})
	acc.Add(Record{JobID: "9", Title: "Driver"})
	acc.Add(Record{JobID: "7", Company: "Himal Traders"})

	records := acc.Records()
	require.Len(t, records, 2)
	require.Equal(t, "7", records[0].JobID)
	require.Equal(t, "Himal Traders", records[0].Company)
	require.Equal(t, "Accountant", records[0].Title)
	require.Equal(t, "9", records[1].JobID)
}

func TestToRowBackfillsSentinels(t *testing.T) {
	row := Record{JobID: "7", Title: "Accountant"}.toRow()
	require.Equal(t, "Accountant", row.Title)
	require.Equal(t, "N/A", row.Company)
	require.Equal(t, "N/A", row.Salary)
	require.Equal(t, "N/A", row.Education)
}
