package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasambhusal/sajha-gyan/internal/analytics"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
)

// run executes the root command against the SQLite file db and returns
// everything written to stdout.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--db", db))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandsRoundTrip(t *testing.T) {
	t.Setenv("SAJHA_STORE_DRIVER", "sqlite")
	dir := t.TempDir()
	db := filepath.Join(dir, "sajha.db")

	_, err := run(t, db, "whoami")
	require.ErrorIs(t, err, progress.ErrNotLoggedIn)

	out, err := run(t, db, "login", "--id", "S-1", "--name", "Asha")
	require.NoError(t, err)
	assert.Contains(t, out, "Namaste, Asha! Signed in as S-1.")

	out, err = run(t, db, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "0/0 (0%)")

	out, err = run(t, db, "subjects")
	require.NoError(t, err)
	assert.Contains(t, out, "mathematics")
	assert.Contains(t, out, "algebra")
	assert.Contains(t, out, "3 subjects")

	out, err = run(t, db, "subjects", "--subject", "science")
	require.NoError(t, err)
	assert.NotContains(t, out, "mathematics")
	assert.Contains(t, out, "1 subjects, 2 subtopics")

	out, err = run(t, db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No tests found.")

	out, err = run(t, db, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Weak areas\n  none yet")

	out, err = run(t, db, "analytics", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "overallStats:")
	assert.Contains(t, out, "totalQuestions:")
	assert.Contains(t, out, "subjectTimeDistribution:")
	assert.NotContains(t, out, "totalquestions:")

	reportPath := filepath.Join(dir, "report.json")
	out, err = run(t, db, "report", "--out", reportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Report saved to "+reportPath)
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report analytics.ProgressReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "Asha", report.StudentInfo.Name)
	assert.Equal(t, "S-1", report.StudentInfo.StudentID)

	out, err = run(t, db, "rename", "Bina")
	require.NoError(t, err)
	assert.Contains(t, out, "Now known as Bina.")

	_, err = run(t, db, "logout")
	require.NoError(t, err)
	_, err = run(t, db, "whoami")
	assert.ErrorIs(t, err, progress.ErrNotLoggedIn)
}

func TestLoginRequiresIdentity(t *testing.T) {
	t.Setenv("SAJHA_STORE_DRIVER", "sqlite")
	db := filepath.Join(t.TempDir(), "sajha.db")
	_, err := run(t, db, "login", "--id", "", "--name", "")
	assert.ErrorContains(t, err, "both --id and --name are required")
}

func TestHistoryRejectsUnknownSort(t *testing.T) {
	t.Setenv("SAJHA_STORE_DRIVER", "sqlite")
	db := filepath.Join(t.TempDir(), "sajha.db")
	_, err := run(t, db, "login", "--id", "S-2", "--name", "Chandra")
	require.NoError(t, err)

	_, err = run(t, db, "history", "--sort", "bogus")
	assert.ErrorContains(t, err, `unknown sort order "bogus"`)
	_, err = run(t, db, "history", "--sort", "date")
	assert.NoError(t, err)
}

func TestEncodeDocRejectsUnknownFormat(t *testing.T) {
	err := encodeDoc(&bytes.Buffer{}, "toml", struct{}{})
	assert.ErrorContains(t, err, `unknown format "toml"`)
}

func TestEncodeDocKeysMatchAcrossFormats(t *testing.T) {
	doc := analyticsDoc{
		Insights:     []analytics.Insight{{Kind: analytics.InsightSuccess, Title: "t"}},
		Difficulties: []analytics.DifficultyScore{{Difficulty: "easy", Sessions: 1, Score: 80}},
	}
	for _, format := range []string{"json", "yaml"} {
		var buf bytes.Buffer
		require.NoError(t, encodeDoc(&buf, format, doc))
		out := buf.String()
		for _, key := range []string{"totalQuestions", "averageSessionTime", "weeklyProgress", "type", "difficulty"} {
			assert.Contains(t, out, key, "%s output", format)
		}
		assert.NotContains(t, out, "kind", "%s output", format)
	}
}

func TestSaveReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, saveReport(path, analytics.ProgressReport{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"overallStats"`)

	err = saveReport(filepath.Join(t.TempDir(), "missing", "out.json"), analytics.ProgressReport{})
	assert.ErrorContains(t, err, "create report")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "1:05", formatDuration(65_000))
	assert.Equal(t, "12:00", formatDuration(720_000))
}
