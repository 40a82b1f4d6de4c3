package commands

import (
	"log/slog"
	"time"

	"nepjobs-backend/lib/serviceutil"
	"nepjobs-backend/services/pipeline"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Performs one full pass: scrape both sources, then rebuild the canonical table.",
	Run: func(cmd *cobra.Command, args []string) {
		p, err := pipeline.New(openStore(), pipeline.Options{})
		if err != nil {
			serviceutil.Fatal("failed to construct pipeline", err)
		}

		t1 := time.Now()
		report := p.RunAll(cmd.Context())
		slog.Info("run complete",
			"merojob", report.Merojob,
			"kumarijob", report.Kumari,
			"clean", report.Clean,
			"seconds", time.Since(t1).Seconds(),
		)
	},
}
