package commands

import (
	"log/slog"

	"nepjobs-backend/lib/serviceutil"
	"nepjobs-backend/services/pipeline"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Rebuilds the canonical jobs table from the raw postings already stored.",
	Run: func(cmd *cobra.Command, args []string) {
		p, err := pipeline.New(openStore(), pipeline.Options{})
		if err != nil {
			serviceutil.Fatal("failed to construct pipeline", err)
		}

		count, err := p.Reconcile(cmd.Context())
		if err != nil {
			serviceutil.Fatal("reconciliation failed", err)
		}
		slog.Info("reconciliation complete", "jobs", count)
	},
}
