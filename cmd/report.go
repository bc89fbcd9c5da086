package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kasambhusal/sajha-gyan/internal/analytics"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a JSON progress report",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		p, err := requireProfile(cmd, e)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		now := time.Now()
		r := analytics.BuildReport(e.svc.Bank, p, e.svc.Repo.Progress(ctx), e.svc.Repo.History(ctx), now)

		path, _ := cmd.Flags().GetString("out")
		if path == "-" {
			return analytics.WriteReport(cmd.OutOrStdout(), r)
		}
		if path == "" {
			path = analytics.ReportFileName(p.Name, now)
		}
		if err := saveReport(path, r); err != nil {
			return err
		}
		e.log.Info("report exported", "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
		return nil
	}),
}

// saveReport writes r to path, including any error from closing the file.
func saveReport(path string, r analytics.ProgressReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := analytics.WriteReport(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

// analyticsDoc bundles every computed view for machine consumers.
type analyticsDoc struct {
	Overall      analytics.Stats             `json:"overallStats" yaml:"overallStats"`
	Subjects     []analytics.SubjectStats    `json:"subjectBreakdown" yaml:"subjectBreakdown"`
	Time         analytics.TimeReport        `json:"timeAnalytics" yaml:"timeAnalytics"`
	Insights     []analytics.Insight         `json:"insights" yaml:"insights"`
	Difficulties []analytics.DifficultyScore `json:"difficultyScores" yaml:"difficultyScores"`
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Print computed analytics as JSON or YAML",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		if _, err := requireProfile(cmd, e); err != nil {
			return err
		}
		ctx := cmd.Context()
		bank := e.svc.Bank
		prog := e.svc.Repo.Progress(ctx)
		hist := e.svc.Repo.History(ctx)
		doc := analyticsDoc{
			Overall:      analytics.OverallStats(prog),
			Subjects:     analytics.SubjectBreakdown(bank, prog),
			Time:         analytics.TimeAnalytics(bank, prog, hist, time.Now()),
			Insights:     analytics.Insights(bank, prog, hist),
			Difficulties: analytics.DifficultyScores(hist),
		}
		format, _ := cmd.Flags().GetString("format")
		return encodeDoc(cmd.OutOrStdout(), format, doc)
	}),
}

func encodeDoc(w io.Writer, format string, v any) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}

func init() {
	reportCmd.Flags().StringP("out", "o", "", "Output file; - for stdout (default NAME_Progress_Report_DATE.json)")
	analyticsCmd.Flags().String("format", "json", "Output format: json or yaml")
}
