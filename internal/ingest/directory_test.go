package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b payslip.pdf"))
	writeFile(t, filepath.Join(root, "a payslip.PDF"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "4C's", "c payslip.pdf"))
	writeFile(t, filepath.Join(root, ".cache", "hidden.pdf"))
	writeFile(t, filepath.Join(root, ".hidden.pdf"))

	var got []string
	stats, walkErrs, err := ScanDirectory(context.Background(), root, true, func(_ context.Context, doc Document) error {
		got = append(got, doc.RelPath)
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, walkErrs)

	assert.Equal(t, []string{"4C's/c payslip.pdf", "a payslip.PDF", "b payslip.pdf"}, got)
	assert.Equal(t, uint32(3), stats.Matched)
	assert.Zero(t, stats.Failed)
}

func TestScanDirectoryIncludesHiddenWhenAsked(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".cache", "hidden.pdf"))

	var got []string
	_, _, err := ScanDirectory(context.Background(), root, false, func(_ context.Context, doc Document) error {
		got = append(got, doc.RelPath)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".cache/hidden.pdf"}, got)
}

func TestScanDirectoryDotRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x.pdf"))
	t.Chdir(root)

	var got []string
	_, _, err := ScanDirectory(context.Background(), ".", true, func(_ context.Context, doc Document) error {
		got = append(got, doc.Path)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.pdf"}, got)
}

func TestScanDirectoryVisitorErrorStops(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"))
	writeFile(t, filepath.Join(root, "b.pdf"))

	boom := errors.New("disk full")
	calls := 0
	_, _, err := ScanDirectory(context.Background(), root, true, func(context.Context, Document) error {
		calls++
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestScanDirectoryErrors(t *testing.T) {
	_, _, err := ScanDirectory(context.Background(), " ", true, nil)
	assert.Error(t, err)

	_, _, err = ScanDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"), true, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = ScanDirectory(ctx, t.TempDir(), true, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden("a/.git"))
	assert.False(t, IsHidden("."))
	assert.False(t, IsHidden("a/b.pdf"))
	assert.True(t, AllowedExt(".PDF"))
	assert.False(t, AllowedExt(".png"))
}
