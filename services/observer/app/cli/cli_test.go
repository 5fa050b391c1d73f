package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func venueDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VENUE_WORK_DIR", dir)
	t.Setenv("VENUE_TIME_LOCATION", "UTC")
	t.Setenv("APP_LOG_LEVEL", "error")

	log := "Timestamp,Type,Details\n" +
		"2025-05-01 09:30:00,ORDER PLACED,\"ID#1 | BUY LIMIT | Price: 100 | Qty: 5\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "all_info.csv"), []byte(log), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "buy book.txt"), []byte("ID#1 | Qty: 5 | Price: 100\n"), 0o600))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExport(t *testing.T) {
	testCases := []struct {
		name     string
		format   string
		assertFn func(t *testing.T, out string, outDir string, err error)
	}{
		{
			name:   "single format",
			format: "csv",
			assertFn: func(t *testing.T, out string, outDir string, err error) {
				require.NoError(t, err)
				path := filepath.Join(outDir, "all_csv_files.zip")
				assert.Equal(t, path+"\n", out)

				zr, err := zip.OpenReader(path)
				require.NoError(t, err)
				defer zr.Close()

				var names []string
				for _, f := range zr.File {
					names = append(names, f.Name)
				}
				assert.Equal(t, []string{
					"Orders.csv", "Trades.csv", "Modifications.csv", "Cancellations.csv", "Raw Logs.csv", "Buy Book.csv",
				}, names)
			},
		},
		{
			name:   "every format",
			format: "all",
			assertFn: func(t *testing.T, out string, outDir string, err error) {
				require.NoError(t, err)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				assert.Len(t, lines, 3)
				for _, name := range []string{"all_csv_files.zip", "all_xlsx_files.zip", "all_pdf_files.zip"} {
					assert.FileExists(t, filepath.Join(outDir, name))
				}
			},
		},
		{
			name:   "unknown format",
			format: "docx",
			assertFn: func(t *testing.T, out string, outDir string, err error) {
				assert.ErrorContains(t, err, "unknown archive format")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			venueDir(t)
			outDir := filepath.Join(t.TempDir(), "exports")

			out, err := run(t, "export", "--format", tc.format, "--out", outDir)
			tc.assertFn(t, out, outDir, err)
		})
	}
}

func TestExec_RejectsMalformedCommand(t *testing.T) {
	venueDir(t)

	_, err := run(t, "exec", "PLACE", "BUY", "LIMIT")
	assert.ErrorContains(t, err, "PLACE expects 4 arguments")
}

func TestSync_NeedsQuestDB(t *testing.T) {
	venueDir(t)

	_, err := run(t, "sync")
	assert.ErrorContains(t, err, "QUESTDB_ENABLED")
}
