package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kasambhusal/sajha-gyan/internal/studyplan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Refresh and show the study plan",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		if _, err := requireProfile(cmd, e); err != nil {
			return err
		}
		plan, err := e.svc.Plans.Refresh(cmd.Context())
		if plan == nil {
			return err
		}
		out := cmd.OutOrStdout()
		bank := e.svc.Bank

		fmt.Fprintln(out, "Weak areas")
		if len(plan.WeakAreas) == 0 {
			fmt.Fprintln(out, "  none yet")
		}
		for _, a := range plan.WeakAreas {
			fmt.Fprintf(out, "  %-32s %3d%%  (%d attempts)\n",
				bank.SubtopicTitle(a.SubjectID, a.SubtopicID), studyplan.Percent(a.Accuracy), a.Attempted)
		}

		fmt.Fprintln(out, "\nStrengths")
		if len(plan.Strengths) == 0 {
			fmt.Fprintln(out, "  none yet")
		}
		for _, a := range plan.Strengths {
			fmt.Fprintf(out, "  %-32s %3d%%  (%d attempts)\n",
				bank.SubtopicTitle(a.SubjectID, a.SubtopicID), studyplan.Percent(a.Accuracy), a.Attempted)
		}

		if len(plan.Recommendations) > 0 {
			fmt.Fprintln(out, "\nRecommendations")
			for _, r := range plan.Recommendations {
				fmt.Fprintf(out, "  [%s] %s\n", r.Priority, r.Message)
			}
		}
		if len(plan.NextGoals) > 0 {
			fmt.Fprintln(out, "\nGoals")
			for _, g := range plan.NextGoals {
				fmt.Fprintf(out, "  • %s\n", g)
			}
		}

		if err != nil {
			return fmt.Errorf("plan shown but not saved: %w", err)
		}
		return nil
	}),
}
