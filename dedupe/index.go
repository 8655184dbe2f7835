package dedupe

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
)

// IndexFileName is the report written at the root of the scanned tree.
const IndexFileName = "duplicate_files_index.txt"

const bytesPerMB = 1024 * 1024

// IndexBuilder renders and persists the duplicate report.
type IndexBuilder struct {
	fs     billy.Filesystem
	root   string
	now    func() time.Time
	logger *slog.Logger
}

// NewIndexBuilder creates an IndexBuilder for root.
func NewIndexBuilder(fsys billy.Filesystem, root string, opts ...Option) *IndexBuilder {
	o := newOptions(opts)
	return &IndexBuilder{fs: fsys, root: filepath.Clean(root), now: o.now, logger: o.logger}
}

// Path is where Write puts the report.
func (b *IndexBuilder) Path() string {
	return filepath.Join(b.root, IndexFileName)
}

// FreedBytes totals the reclaimable bytes across groups.
func FreedBytes(groups []OrganizedGroup) int64 {
	var freed int64
	for _, g := range groups {
		freed += g.FreedBytes()
	}
	return freed
}

// FormatMB renders a byte count as megabytes with two decimals.
func FormatMB(bytes int64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/bytesPerMB)
}

// Render builds the report text. Groups are numbered from 1 in the order
// given.
func (b *IndexBuilder) Render(groups []OrganizedGroup) string {
	var sb strings.Builder

	sb.WriteString("Duplicate Files Comprehensive Index\n")
	sb.WriteString("===================================\n\n")
	fmt.Fprintf(&sb, "Total duplicate groups found: %d\n", len(groups))
	fmt.Fprintf(&sb, "Index created: %s\n", b.now().UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&sb, "Scanned directory: %s\n\n", b.root)

	totalFiles := 0
	for _, g := range groups {
		totalFiles += g.Group.Len()
	}
	fmt.Fprintf(&sb, "Total files in duplicate groups: %d\n", totalFiles)
	fmt.Fprintf(&sb, "Space that can be freed: Approximately %s MB (estimated)\n\n", FormatMB(FreedBytes(groups)))

	sb.WriteString("Duplicate Groups:\n")
	sb.WriteString("================\n\n")

	for i, g := range groups {
		fmt.Fprintf(&sb, "Group %d:\n", i+1)
		fmt.Fprintf(&sb, "  Hash: %s\n", g.Fingerprint)
		fmt.Fprintf(&sb, "  Folder: %s\n", g.Folder)
		fmt.Fprintf(&sb, "  Files in group: %d\n", g.Group.Len())
		sb.WriteString("  File paths:\n")
		for _, path := range g.Group.Files {
			fmt.Fprintf(&sb, "    - %s\n", path)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Write renders the report and replaces any previous one. The text goes
// to a uniquely named temp file next to the report first, then is renamed
// into place; the temp file is removed if anything fails.
func (b *IndexBuilder) Write(groups []OrganizedGroup) (string, error) {
	path := b.Path()
	tmp := filepath.Join(b.root, "."+IndexFileName+"."+uuid.NewString()+".tmp")

	if err := b.writeFile(tmp, b.Render(groups)); err != nil {
		_ = b.fs.Remove(tmp)
		return "", err
	}
	if err := b.fs.Rename(tmp, path); err != nil {
		_ = b.fs.Remove(tmp)
		return "", fmt.Errorf("replace %s: %w", path, err)
	}

	b.logger.Debug("index written", "path", path, "groups", len(groups))
	return path, nil
}

func (b *IndexBuilder) writeFile(path, content string) error {
	f, err := b.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
