package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"nepjobs-backend/lib/telemetry"

	"github.com/mazen160/go-random"

	_ "modernc.org/sqlite"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
}

type ServiceResult struct {
	DB *sql.DB
}

// opens an in-memory sqlite database with the given schema applied and
// sets up test telemetry.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	var sqlite *sql.DB
	if params.DbSchema != "" {
		var err error
		sqlite, err = sql.Open("sqlite", ":memory:")
		if err != nil {
			t.Fatal(err)
		}
		_, err = sqlite.Exec(params.DbSchema)
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			t.Fatal(err)
		}
	}

	return ServiceResult{DB: sqlite}, cleanup
}

// a short random lowercase identifier for test fixtures.
func RandomID(t testing.TB) string {
	id, err := random.String(8)
	if err != nil {
		t.Fatal(err)
	}
	return strings.ToLower(id)
}
