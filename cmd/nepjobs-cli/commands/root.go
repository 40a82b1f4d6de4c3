package commands

import (
	"context"
	"fmt"
	"os"

	configsqlite "nepjobs-backend/lib/configutil/sqlite"
	"nepjobs-backend/lib/jobstore"
	"nepjobs-backend/lib/jobstore/db"
	"nepjobs-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nepjobs-cli",
	Short: "nepjobs-cli scrapes Nepali job boards and reports on the cleaned results.",
}

var dbPath *string

func init() {
	dbPath = rootCmd.PersistentFlags().String("db", "nepjobs.db", "The database to read and write job postings to.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() jobstore.Store {
	database, err := configsqlite.Struct{File: *dbPath}.OpenDB(db.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	return jobstore.NewStore(database)
}
