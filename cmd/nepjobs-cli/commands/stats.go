package commands

import (
	"fmt"
	"os"

	"nepjobs-backend/lib/jobstore"
	"nepjobs-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsColumns = []string{"source", "category", "location", "job_level"}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints aggregate counts and salary figures over the canonical jobs table.",
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()

		for _, column := range statsColumns {
			groups, err := store.GroupCounts(cmd.Context(), column)
			if err != nil {
				serviceutil.Fatal("failed to aggregate "+column, err)
			}
			renderGroups(column, groups)
		}

		salary, err := store.SalaryStats(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to aggregate salaries", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"With Salary", "Min", "Avg", "Max"})
		t.AppendRow(table.Row{
			salary.Count,
			fmt.Sprintf("%.0f", salary.Min),
			fmt.Sprintf("%.0f", salary.Avg),
			fmt.Sprintf("%.0f", salary.Max),
		})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

func renderGroups(column string, groups []jobstore.GroupCount) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{column, "Jobs"})
	for _, g := range groups {
		t.AppendRow(table.Row{g.Label, g.Count})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
