package dedupe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dendrascience/dupfinder/util"
	"github.com/go-git/go-billy/v5"
	"golang.org/x/sync/errgroup"
)

// DuplicateGroup holds the paths of files sharing one fingerprint, in the
// order they were discovered. The first path is the group's original.
type DuplicateGroup struct {
	Files []string
}

// Add appends a path to the group.
func (g *DuplicateGroup) Add(path string) {
	g.Files = append(g.Files, path)
}

// Len returns the number of members.
func (g DuplicateGroup) Len() int {
	return len(g.Files)
}

// Original returns the first-discovered member, or "" for an empty group.
func (g DuplicateGroup) Original() string {
	if len(g.Files) == 0 {
		return ""
	}
	return g.Files[0]
}

// Duplicates maps fingerprints to their groups. Iteration follows the
// discovery order of each group's original.
type Duplicates struct {
	groups map[string]*DuplicateGroup
	order  []string
}

func newDuplicates() *Duplicates {
	return &Duplicates{groups: make(map[string]*DuplicateGroup)}
}

func (d *Duplicates) add(fingerprint, path string) {
	g, ok := d.groups[fingerprint]
	if !ok {
		g = &DuplicateGroup{}
		d.groups[fingerprint] = g
		d.order = append(d.order, fingerprint)
	}
	g.Add(path)
}

// prune drops every group with fewer than two members.
func (d *Duplicates) prune() {
	kept := d.order[:0]
	for _, fp := range d.order {
		if d.groups[fp].Len() < 2 {
			delete(d.groups, fp)
			continue
		}
		kept = append(kept, fp)
	}
	d.order = kept
}

// Len returns the number of groups.
func (d *Duplicates) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Get returns the group for a fingerprint.
func (d *Duplicates) Get(fingerprint string) (DuplicateGroup, bool) {
	if d == nil {
		return DuplicateGroup{}, false
	}
	g, ok := d.groups[fingerprint]
	if !ok {
		return DuplicateGroup{}, false
	}
	return *g, true
}

// Fingerprints returns the fingerprints in iteration order.
func (d *Duplicates) Fingerprints() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.order...)
}

// Iterate yields each fingerprint with its group.
func (d *Duplicates) Iterate(yield func(string, DuplicateGroup) bool) {
	if d == nil {
		return
	}
	for _, fp := range d.order {
		if !yield(fp, *d.groups[fp]) {
			return
		}
	}
}

// Detector groups scanned files by content fingerprint.
type Detector struct {
	fs      billy.Filesystem
	workers int
	logger  *slog.Logger
}

// NewDetector creates a Detector reading files from fsys.
func NewDetector(fsys billy.Filesystem, opts ...Option) *Detector {
	o := newOptions(opts)
	return &Detector{fs: fsys, workers: o.workers, logger: o.logger}
}

// FindDuplicates hashes every file and returns the groups with two or
// more members. The first hashing failure aborts detection and no
// partial result is returned.
func (d *Detector) FindDuplicates(ctx context.Context, files []FileRecord) (*Duplicates, error) {
	hashes, err := d.hashAll(ctx, files)
	if err != nil {
		return nil, err
	}

	dups := newDuplicates()
	for i, f := range files {
		dups.add(hashes[i], f.Path)
	}
	unique := len(dups.order)
	dups.prune()

	d.logger.Debug("detection complete", "files", len(files), "fingerprints", unique, "groups", dups.Len())
	return dups, nil
}

// hashAll returns one fingerprint per file, index-aligned with files.
func (d *Detector) hashAll(ctx context.Context, files []FileRecord) ([]string, error) {
	hashes := make([]string, len(files))

	if d.workers <= 1 {
		for i, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			h, err := util.GetFileHash(d.fs, f.Path)
			if err != nil {
				return nil, fmt.Errorf("hash %s: %w", f.Path, err)
			}
			hashes[i] = h
		}
		return hashes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			h, err := util.GetFileHash(d.fs, f.Path)
			if err != nil {
				return fmt.Errorf("hash %s: %w", f.Path, err)
			}
			hashes[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}
