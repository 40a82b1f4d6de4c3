package jobstore

import (
	"context"
	"testing"
	"time"

	"nepjobs-backend/lib/jobstore/db"
	"nepjobs-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (Store, context.Context) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "jobstore",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	return NewStore(res.DB), ctx
}

func TestInsertIsIdempotentPerNaturalKey(t *testing.T) {
	store, ctx := setup(t)

	at := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	rows := []MerojobRow{{ID: "42", Title: "Backend Developer"}}

	inserted, err := store.InsertMerojobRows(ctx, rows, at)
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	// same (id, scraped_at): silently skipped, not overwritten
	inserted, err = store.InsertMerojobRows(ctx, rows, at)
	require.NoError(t, err)
	require.Equal(t, 0, inserted)

	stored, err := store.ListMerojobRows(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestDistinctRunsAreAdditive(t *testing.T) {
	store, ctx := setup(t)

	rows := []KumariRow{{JobID: testutil.RandomID(t), Title: "Accountant"}}

	first := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour * 24 * 7)

	_, err := store.InsertKumariRows(ctx, rows, first)
	require.NoError(t, err)
	_, err = store.InsertKumariRows(ctx, rows, second)
	require.NoError(t, err)

	stored, err := store.ListKumariRows(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Equal(t, first.Format(RawTimeLayout), stored[0].ScrapedAt)
	require.Equal(t, second.Format(RawTimeLayout), stored[1].ScrapedAt)
}

func TestReplaceCleanRebuildsWholesale(t *testing.T) {
	store, ctx := setup(t)

	min := 20000.0
	err := store.ReplaceClean(ctx, []CleanRow{
		{Source: SourceMerojob, JobID: "mj_1", Title: "Old Row", SalaryMin: &min},
		{Source: SourceKumari, JobID: "kj_1", Title: "Another Old Row"},
	})
	require.NoError(t, err)

	err = store.ReplaceClean(ctx, []CleanRow{
		{Source: SourceKumari, JobID: "kj_2", Title: "New Row"},
	})
	require.NoError(t, err)

	rows, err := store.ListCleanRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "New Row", rows[0].Title)
	require.Nil(t, rows[0].SalaryMin)
}

func TestReplaceCleanWithNothingYieldsEmptyTable(t *testing.T) {
	store, ctx := setup(t)

	err := store.ReplaceClean(ctx, nil)
	require.NoError(t, err)

	rows, err := store.ListCleanRows(ctx)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestNullableSalaryRoundTrip(t *testing.T) {
	store, ctx := setup(t)

	min := 25000.0
	err := store.ReplaceClean(ctx, []CleanRow{
		{Source: SourceKumari, JobID: "kj_9", Title: "Driver", SalaryMin: &min},
	})
	require.NoError(t, err)

	rows, err := store.ListCleanRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].SalaryMin)
	require.Equal(t, 25000.0, *rows[0].SalaryMin)
	require.Nil(t, rows[0].SalaryMax)
}

func TestGroupCountsAndSalaryStats(t *testing.T) {
	store, ctx := setup(t)

	a, b := 10000.0, 30000.0
	err := store.ReplaceClean(ctx, []CleanRow{
		{Source: SourceMerojob, JobID: "mj_1", Title: "A", Location: "Kathmandu", SalaryMin: &a, SalaryMax: &b},
		{Source: SourceMerojob, JobID: "mj_2", Title: "B", Location: "Kathmandu", SalaryMin: &b},
		{Source: SourceKumari, JobID: "kj_1", Title: "C", Location: "Pokhara"},
	})
	require.NoError(t, err)

	counts, err := store.GroupCounts(ctx, "location")
	require.NoError(t, err)
	require.Equal(t, []GroupCount{
		{Label: "Kathmandu", Count: 2},
		{Label: "Pokhara", Count: 1},
	}, counts)

	stats, err := store.SalaryStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Count)
	require.Equal(t, 10000.0, stats.Min)
	require.Equal(t, 30000.0, stats.Max)
}
