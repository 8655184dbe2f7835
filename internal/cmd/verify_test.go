package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dendrascience/dupfinder/dedupe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVerify(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt": "same",
		"b.txt": "same",
	})
	summary, err := dedupe.Execute(context.Background(), hostFS(), dir, dedupe.WithSkipSet(dedupe.NewSkipSet()))
	require.NoError(t, err)
	require.Len(t, summary.Groups, 1)
	logger := slog.New(slog.DiscardHandler)

	var out bytes.Buffer
	require.NoError(t, runVerify(&out, hostFS(), dir, logger, true))
	assert.Contains(t, out.String(), "Verified 2 files in 1 folders")

	tampered := filepath.Join(summary.Groups[0].Folder, "a.txt")
	require.NoError(t, os.WriteFile(tampered, []byte("edited"), 0o644))

	out.Reset()
	err = runVerify(&out, hostFS(), dir, logger, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files")
	assert.Contains(t, out.String(), "MISMATCH "+tampered)
}

func TestRunVerify_NothingOrganized(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runVerify(&out, hostFS(), t.TempDir(), slog.New(slog.DiscardHandler), false))
	assert.Contains(t, out.String(), "Verified 0 files in 0 folders")
}
