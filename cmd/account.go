package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/studyplan"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as a learner (resets that learner's saved data)",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		id, _ := cmd.Flags().GetString("id")
		name, _ := cmd.Flags().GetString("name")
		p, err := e.svc.Repo.Login(cmd.Context(), id, name)
		if errors.Is(err, progress.ErrInvalidIdentity) {
			return fmt.Errorf("both --id and --name are required")
		}
		if err != nil && p == nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Namaste, %s! Signed in as %s.\n", p.Name, p.StudentID)
		return err
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and delete all saved learner data",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		if err := e.svc.Repo.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in learner",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		p, err := requireProfile(cmd, e)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s %s\n", "Name", p.Name)
		fmt.Fprintf(out, "%-10s %s\n", "ID", p.StudentID)
		fmt.Fprintf(out, "%-10s %s\n", "Joined", p.JoinDate.Format("2006-01-02"))
		fmt.Fprintf(out, "%-10s %d\n", "Tests", p.TotalTests)
		fmt.Fprintf(out, "%-10s %d/%d (%d%%)\n", "Correct",
			p.CorrectAnswers, p.TotalQuestions, studyplan.Percent(p.Accuracy()))
		return nil
	}),
}

var renameCmd = &cobra.Command{
	Use:   "rename NAME",
	Short: "Change the signed-in learner's display name",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		p, err := e.svc.Repo.Rename(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Now known as %s.\n", p.Name)
		return nil
	}),
}

func init() {
	loginCmd.Flags().String("id", "", "Student id")
	loginCmd.Flags().String("name", "", "Display name")
}
