package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/payslips-extractor/internal/export"
	"github.com/joseph-ayodele/payslips-extractor/internal/pipeline"
)

func quietEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PAYSLIPS_CONFIG", "")
	t.Setenv("PAYSLIPS_LOG_LEVEL", "error")
}

func TestRunProcessesDirectory(t *testing.T) {
	quietEnv(t)
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "out")
	good, err := os.ReadFile(filepath.Join("..", "..", "internal", "pdftext", "testdata", "fields.pdf"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(in, "good.pdf"), good, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.pdf"), []byte("garbage"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("ignored"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-input-dir", in, "-output-dir", out, "-no-xlsx"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	assert.Contains(t, stdout.String(), "- PDFs found: 2")
	assert.Contains(t, stdout.String(), "- Processed: 1")
	assert.Contains(t, stdout.String(), "- Skipped: 1")

	data, err := os.ReadFile(filepath.Join(out, "good_extracted.json"))
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "Software Engineer", rec["Designation"])
	assert.Equal(t, "95.00", rec["Overtime 1.5 @ 15%"])
	assert.Equal(t, "2980.97", rec["Gross"])
	assert.Equal(t, "2645.72", rec["Net"])
	assert.Nil(t, rec["Commissions"])
	assert.FileExists(t, filepath.Join(out, "all_payslips.csv"))
	assert.FileExists(t, filepath.Join(out, "skipped.csv"))
	assert.NoFileExists(t, filepath.Join(out, "all_payslips.xlsx"))
}

func TestRunConfigErrors(t *testing.T) {
	quietEnv(t)
	in := t.TempDir()
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing input dir", []string{"-input-dir", filepath.Join(in, "missing"), "-output-dir", t.TempDir()}, exitFailed},
		{"bad layout", []string{"-input-dir", in, "-output-dir", t.TempDir(), "-layout", "tree"}, exitFailed},
		{"missing pattern table", []string{"-input-dir", in, "-output-dir", t.TempDir(), "-patterns", filepath.Join(in, "nope.json")}, exitFailed},
		{"missing config file", []string{"-config", filepath.Join(in, "nope.toml")}, exitFailed},
		{"unknown flag", []string{"-bogus"}, exitUsage},
		{"positional argument", []string{"-input-dir", in, "extra"}, exitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.want, run(tt.args, &stdout, &stderr))
			assert.NotEmpty(t, stderr.String())
		})
	}
}

func TestPrintSummaryListsUnreadableEntries(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, pipeline.Summary{
		Processed:  2,
		WalkFailed: 1,
		WalkErrors: []export.SkipEntry{{Path: "in/locked", Error: "permission denied"}},
	})
	assert.Contains(t, buf.String(), "- Processed: 2")
	assert.Contains(t, buf.String(), "- Skipped: 0")
	assert.Contains(t, buf.String(), "- Unreadable entries: 1\n  - in/locked: permission denied")
}

func TestRunExitsZeroWhenAggregateWriteFails(t *testing.T) {
	quietEnv(t)
	in, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.pdf"), []byte("garbage"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(out, "all_payslips.csv"), 0o755))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-input-dir", in, "-output-dir", out, "-no-xlsx"}, &stdout, &stderr)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout.String(), "- Aggregate output failed:")
	assert.Contains(t, stderr.String(), "aggregate output incomplete")
	assert.FileExists(t, filepath.Join(out, "skipped.csv"))
}
