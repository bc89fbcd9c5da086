package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kasambhusal/sajha-gyan/internal/app"
)

var practiceCmd = &cobra.Command{
	Use:         "practice",
	Aliases:     []string{"play"},
	Short:       "Open the practice app",
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        withEnv(runApp),
}

func init() {
	practiceCmd.Flags().Bool("no-splash", false, "Skip the welcome splash")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome splash")
}

// runApp launches the TUI over the wired services.
func runApp(cmd *cobra.Command, args []string, e *env) error {
	skip, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(e.svc, app.Options{SkipWelcome: skip})
}
