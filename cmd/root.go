package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sajha",
	Short: "Practice quizzes and track your learning",
	Long: "Sajha Gyan is a terminal quiz tracker: practice subject questions, " +
		"see your weak areas and strengths, and export progress reports.",
	SilenceUsage: true,
	Annotations:  map[string]string{annotationTUI: "true"},
	RunE:         withEnv(runApp),
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SAJHA_DB and the store driver)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./config.yaml or $XDG_CONFIG_HOME/sajha-gyan/config.yaml)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a JSON or YAML question catalog (default: built-in)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(versionCmd)
}
