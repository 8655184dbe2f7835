package dedupe

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dendrascience/dupfinder/util"
	"github.com/go-git/go-billy/v5"
)

// DuplicatesDir is the folder under the root that receives every group.
const DuplicatesDir = "duplicates"

// OrganizedGroup records what the Organizer did with one group. Sizes
// holds one entry per member of Group, captured before any move.
type OrganizedGroup struct {
	Fingerprint string
	Group       DuplicateGroup
	Folder      string
	Sizes       []int64
}

// TotalBytes sums the recorded sizes.
func (g OrganizedGroup) TotalBytes() int64 {
	var total int64
	for _, s := range g.Sizes {
		total += s
	}
	return total
}

// KeepBytes is the smallest recorded size: the copy that stays.
func (g OrganizedGroup) KeepBytes() int64 {
	if len(g.Sizes) == 0 {
		return 0
	}
	keep := g.Sizes[0]
	for _, s := range g.Sizes[1:] {
		keep = min(keep, s)
	}
	return keep
}

// FreedBytes is TotalBytes minus KeepBytes, never below zero.
func (g OrganizedGroup) FreedBytes() int64 {
	return max(g.TotalBytes()-g.KeepBytes(), 0)
}

// Organizer moves duplicate groups into per-group folders under
// <root>/duplicates.
type Organizer struct {
	fs     billy.Filesystem
	root   string
	skip   SkipSet
	logger *slog.Logger
}

// NewOrganizer creates an Organizer rooted at root. Only WithSkipSet and
// WithLogger are relevant here.
func NewOrganizer(fsys billy.Filesystem, root string, opts ...Option) *Organizer {
	o := newOptions(opts)
	return &Organizer{fs: fsys, root: filepath.Clean(root), skip: o.skip, logger: o.logger}
}

// Folder returns the destination folder for a group.
func (o *Organizer) Folder(fingerprint string, g DuplicateGroup) string {
	return filepath.Join(o.root, DuplicatesDir, util.FolderName(fingerprint, filepath.Base(g.Original())))
}

// Organize moves every group into its folder and returns one
// OrganizedGroup per group. The first failure stops the run; groups
// handled before it keep their moves.
func (o *Organizer) Organize(dups *Duplicates) ([]OrganizedGroup, error) {
	return o.process(dups, true)
}

// Plan computes folders and sizes without touching the filesystem.
func (o *Organizer) Plan(dups *Duplicates) ([]OrganizedGroup, error) {
	return o.process(dups, false)
}

func (o *Organizer) process(dups *Duplicates, move bool) ([]OrganizedGroup, error) {
	organized := make([]OrganizedGroup, 0, dups.Len())
	for fp, g := range dups.Iterate {
		if g.Len() == 0 {
			continue
		}
		og, err := o.organizeGroup(fp, g, move)
		if err != nil {
			return nil, err
		}
		organized = append(organized, og)
	}
	return organized, nil
}

func (o *Organizer) organizeGroup(fingerprint string, g DuplicateGroup, move bool) (OrganizedGroup, error) {
	folder := o.Folder(fingerprint, g)
	og := OrganizedGroup{
		Fingerprint: fingerprint,
		Group:       g,
		Folder:      folder,
		Sizes:       make([]int64, 0, g.Len()),
	}

	if move {
		if err := o.fs.MkdirAll(folder, 0o755); err != nil {
			return OrganizedGroup{}, fmt.Errorf("create folder %s: %w", folder, err)
		}
	}

	for _, path := range g.Files {
		info, err := o.fs.Stat(path)
		if err != nil {
			return OrganizedGroup{}, fmt.Errorf("stat %s: %w", path, err)
		}
		og.Sizes = append(og.Sizes, info.Size())

		if !move {
			continue
		}
		if o.skip.Contains(path) {
			o.logger.Debug("leaving protected file in place", "path", path)
			continue
		}
		if filepath.Dir(filepath.Clean(path)) == folder {
			o.logger.Debug("file already in its group folder", "path", path)
			continue
		}

		dst, err := util.UniqueDestination(o.fs, folder, filepath.Base(path))
		if err != nil {
			return OrganizedGroup{}, fmt.Errorf("pick destination for %s: %w", path, err)
		}
		if err := o.fs.Rename(path, dst); err != nil {
			return OrganizedGroup{}, fmt.Errorf("move %s to %s: %w", path, dst, err)
		}
		o.logger.Debug("moved duplicate", "from", path, "to", dst)
	}

	return og, nil
}
