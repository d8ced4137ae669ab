package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"focusrune/pkg/analytics"
	"focusrune/pkg/report"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := api.Status(ctx(cmd))
		if err != nil {
			return err
		}
		return printJSON(st)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion and due-date analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := api.Stats(ctx(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Tasks %d, completed %d, pending %d (%.0f%% done)\n", st.Total, st.Completed, st.Pending, st.CompletionRate*100)
		fmt.Printf("Overdue %d, due today %d, recurring %d\n\n", st.Overdue, st.DueToday, st.Recurring)
		printBars("By priority", st.ByPriority)
		printBars("By recurrence", st.ByRecurrence)
		printBars("Due in the next week", st.DueSoon)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as json, yaml, csv or pdf",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("output")
		data, err := api.Export(ctx(cmd), format)
		if err != nil {
			return err
		}
		if out == "" || out == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Show or change the bulk selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := api.Selection(ctx(cmd))
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var selectToggleCmd = &cobra.Command{
	Use:   "toggle <id>...",
	Short: "Toggle tasks in the selection",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if _, err := api.Select(ctx(cmd), id); err != nil {
				return err
			}
		}
		res, err := api.Selection(ctx(cmd))
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var selectAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Select every task",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := api.SelectAll(ctx(cmd))
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var selectClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := api.ClearSelection(ctx(cmd))
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var selectCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Toggle completion of every selected task",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := api.CompleteSelected(ctx(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Toggled %d tasks.\n", res.Affected)
		return nil
	},
}

var selectDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete every selected task",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := api.DeleteSelected(ctx(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d tasks.\n", res.Affected)
		return nil
	},
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the activity journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if verify, _ := cmd.Flags().GetBool("verify"); verify {
			if err := api.VerifyJournal(ctx(cmd)); err != nil {
				return err
			}
			fmt.Println("Journal chain OK.")
			return nil
		}
		entryType, _ := cmd.Flags().GetString("type")
		taskID, _ := cmd.Flags().GetString("task")
		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := api.Journal(ctx(cmd), entryType, taskID, limit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s  %-16s  %-8s  %v\n", e.Timestamp.Local().Format(time.DateTime), e.Type, truncStr(e.TaskID, 8), e.Content)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "one of json, yaml, csv, pdf")
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	exportCmd.Long = "Supported formats: " + fmt.Sprint(report.Formats)

	selectCmd.AddCommand(selectToggleCmd, selectAllCmd, selectClearCmd, selectCompleteCmd, selectDeleteCmd)

	journalCmd.Flags().String("type", "", "only entries of this type, e.g. task.added")
	journalCmd.Flags().String("task", "", "only entries about this task id")
	journalCmd.Flags().Int("limit", 20, "number of entries")
	journalCmd.Flags().Bool("verify", false, "check the hash chain instead of listing")
}

func printBars(title string, buckets []analytics.Bucket) {
	const width = 30
	fmt.Println(title)
	top := analytics.Max(buckets)
	for _, b := range buckets {
		n := b.Count * width / top
		bar := make([]rune, n)
		for i := range bar {
			bar[i] = '#'
		}
		fmt.Printf("  %-10s %-30s %d\n", b.Label, string(bar), b.Count)
	}
	fmt.Println()
}
