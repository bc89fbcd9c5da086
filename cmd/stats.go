package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kasambhusal/sajha-gyan/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show overall stats, subject breakdown and insights",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		if _, err := requireProfile(cmd, e); err != nil {
			return err
		}
		ctx := cmd.Context()
		bank := e.svc.Bank
		prog := e.svc.Repo.Progress(ctx)
		hist := e.svc.Repo.History(ctx)
		out := cmd.OutOrStdout()

		overall := analytics.OverallStats(prog)
		fmt.Fprintf(out, "Questions  %d\n", overall.TotalQuestions)
		fmt.Fprintf(out, "Correct    %d\n", overall.CorrectAnswers)
		fmt.Fprintf(out, "Accuracy   %d%%\n", overall.Accuracy)
		fmt.Fprintf(out, "Time       %d min\n", overall.TotalTime)

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-24s  %9s  %8s  %8s\n", "Subject", "Attempted", "Accuracy", "Progress")
		fmt.Fprintln(out, strings.Repeat("─", 55))
		for _, s := range analytics.SubjectBreakdown(bank, prog) {
			fmt.Fprintf(out, "%-24s  %9d  %7d%%  %7d%%\n", s.Title, s.Attempted, s.Accuracy, s.Progress)
		}

		if insights := analytics.Insights(bank, prog, hist); len(insights) > 0 {
			fmt.Fprintln(out)
			for _, in := range insights {
				fmt.Fprintf(out, "[%s] %s: %s\n", in.Kind, in.Title, in.Message)
				if in.Action != "" {
					fmt.Fprintf(out, "    → %s\n", in.Action)
				}
			}
		}

		printTime(out, analytics.TimeAnalytics(bank, prog, hist, time.Now()))
		return nil
	}),
}

func printTime(out io.Writer, t analytics.TimeReport) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Study time %s, average test %s\n",
		formatDuration(t.TotalStudyTime), formatDuration(int64(t.AverageSessionTime)*1000))
	for _, d := range t.WeeklyProgress {
		fmt.Fprintf(out, "  %s  %2d tests  %3d questions  %3d%%\n", d.Date, d.Tests, d.Questions, d.Accuracy)
	}
}

// formatDuration renders millis as m:ss.
func formatDuration(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
