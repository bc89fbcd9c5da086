package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
	"github.com/kasambhusal/sajha-gyan/internal/studyplan"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the catalog with remaining questions and accuracy",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		only, _ := cmd.Flags().GetString("subject")
		bank := e.svc.Bank
		prog := e.svc.Repo.Progress(cmd.Context())
		planner := e.svc.Sessions.Planner()
		out := cmd.OutOrStdout()

		subjects := bank.Subjects()
		if only != "" {
			s, err := bank.Subject(only)
			if err != nil {
				return err
			}
			subjects = []questionbank.Subject{s}
		}

		fmt.Fprintf(out, "%-16s  %-16s  %-28s  %9s  %8s\n",
			"Subject", "Subtopic", "Title", "Remaining", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 85))

		subtopics := 0
		for _, s := range subjects {
			for _, st := range s.Subtopics {
				subtopics++
				left, _ := planner.Available(prog, s.ID, st.ID)
				acc := "-"
				if stat, ok := prog.Stat(s.ID, st.ID); ok && stat.Attempted > 0 {
					acc = fmt.Sprintf("%d%%", studyplan.Percent(stat.Accuracy()))
				}
				title := st.Title
				if len(title) > 28 {
					title = title[:25] + "..."
				}
				fmt.Fprintf(out, "%-16s  %-16s  %-28s  %4d/%-4d  %8s\n",
					s.ID, st.ID, title, left, len(st.Questions), acc)
			}
		}

		fmt.Fprintf(out, "\n%d subjects, %d subtopics\n", len(subjects), subtopics)
		return nil
	}),
}

func init() {
	subjectsCmd.Flags().String("subject", "", "Only list one subject id")
}
