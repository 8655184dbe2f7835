package dedupe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 17, 12, 30, 45, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// hostFS returns the host filesystem addressed by absolute paths.
func hostFS() billy.Filesystem {
	return osfs.New("/")
}

// writeTree creates files below root from a relative-path to content map.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// listFiles returns every regular file below dir, relative to dir.
func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			out = append(out, rel)
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func paths(records []FileRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Path)
	}
	return out
}

// faultFS wraps a filesystem and lets a test intercept Open and ReadDir.
type faultFS struct {
	billy.Filesystem
	open    func(name string) (billy.File, error)
	readDir func(name string) ([]os.FileInfo, error)
}

func (f *faultFS) Open(name string) (billy.File, error) {
	if f.open != nil {
		return f.open(name)
	}
	return f.Filesystem.Open(name)
}

func (f *faultFS) ReadDir(name string) ([]os.FileInfo, error) {
	if f.readDir != nil {
		return f.readDir(name)
	}
	return f.Filesystem.ReadDir(name)
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
