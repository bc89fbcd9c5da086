package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kasambhusal/sajha-gyan/internal/analytics"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed tests",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		if _, err := requireProfile(cmd, e); err != nil {
			return err
		}
		search, _ := cmd.Flags().GetString("search")
		subject, _ := cmd.Flags().GetString("subject")
		sortFlag, _ := cmd.Flags().GetString("sort")
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")

		sortBy, err := analytics.ParseSortBy(sortFlag)
		if err != nil {
			return err
		}
		res := analytics.QueryHistory(e.svc.Repo.History(cmd.Context()), analytics.Query{
			Search:  search,
			Subject: subject,
			SortBy:  sortBy,
			Page:    page,
			PerPage: perPage,
		})

		out := cmd.OutOrStdout()
		if res.Total == 0 {
			fmt.Fprintln(out, "No tests found.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-16s  %-16s  %9s  %5s  %6s\n",
			"Date", "Subject", "Subtopic", "Questions", "Score", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 78))
		for _, t := range res.Tests {
			fmt.Fprintf(out, "%-16s  %-16s  %-16s  %4d/%-4d  %4d%%  %6s\n",
				t.Date.Local().Format("2006-01-02 15:04"), t.Subject, t.Subtopic,
				t.Correct, t.Questions, t.Score, formatDuration(t.TotalTime))
		}
		fmt.Fprintf(out, "\nPage %d of %d (%d tests)\n", res.Page, res.TotalPages, res.Total)
		return nil
	}),
}

func init() {
	historyCmd.Flags().String("search", "", "Match subject or subtopic ids (case-insensitive)")
	historyCmd.Flags().String("subject", analytics.AllSubjects, "Only show one subject id")
	historyCmd.Flags().String("sort", string(analytics.SortByDate), "Sort by date, score or questions")
	historyCmd.Flags().Int("page", 1, "Page number")
	historyCmd.Flags().Int("per-page", analytics.DefaultPerPage, "Tests per page")
}
