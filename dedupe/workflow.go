package dedupe

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dendrascience/dupfinder/util"
	"github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"
)

// WorkflowSummary is what a run hands back to the caller.
type WorkflowSummary struct {
	FilesScanned        int
	DuplicateGroupCount int
	DuplicatesFound     bool
	IndexPath           string
	// IndexContent is the report read back from disk, or the rendered
	// report in a dry run.
	IndexContent string
	// IndexReadErr is set when the report was written but could not be
	// read back. The run itself still succeeded.
	IndexReadErr error
	FreedBytes   int64
	Groups       []OrganizedGroup
	DryRun       bool
}

// Execute runs scan, detect, organize and index against root. A failure
// in any stage is returned as a *WorkflowError and ends the run.
//
// root must be absolute. The skip set compares host paths, and a relative
// root would resolve differently on fsys than in the working directory.
func Execute(ctx context.Context, fsys billy.Filesystem, root string, opts ...Option) (WorkflowSummary, error) {
	o := newOptions(opts)
	logger := o.logger.With("root", root)

	if !filepath.IsAbs(root) {
		return WorkflowSummary{}, stageError(StageScan, fmt.Errorf("%s: %w", root, util.ErrRelativePath))
	}

	files, err := NewScanner(fsys, root, opts...).Scan()
	if err != nil {
		return WorkflowSummary{}, stageError(StageScan, err)
	}
	logger.Info("scanned files", "count", len(files))

	dups, err := NewDetector(fsys, opts...).FindDuplicates(ctx, files)
	if err != nil {
		return WorkflowSummary{}, stageError(StageDetect, err)
	}
	logger.Info("found duplicate groups", "count", dups.Len())

	summary := WorkflowSummary{
		FilesScanned: len(files),
		DryRun:       o.dryRun,
	}

	var groups []OrganizedGroup
	if dups.Len() > 0 {
		skipOpts := opts
		if !o.skipSet {
			skipOpts = append(append([]Option(nil), opts...), WithSkipSet(ExecutableSkipSet()))
		}
		organizer := NewOrganizer(fsys, root, skipOpts...)
		if o.dryRun {
			groups, err = organizer.Plan(dups)
		} else {
			groups, err = organizer.Organize(dups)
		}
		if err != nil {
			return WorkflowSummary{}, stageError(StageOrganize, err)
		}
	}

	summary.Groups = groups
	summary.DuplicateGroupCount = len(groups)
	summary.DuplicatesFound = len(groups) > 0
	summary.FreedBytes = FreedBytes(groups)

	builder := NewIndexBuilder(fsys, root, opts...)
	summary.IndexPath = builder.Path()

	if o.dryRun {
		summary.IndexContent = builder.Render(groups)
		return summary, nil
	}

	if _, err := builder.Write(groups); err != nil {
		return WorkflowSummary{}, stageError(StageIndex, err)
	}
	logger.Info("wrote index", "path", summary.IndexPath)

	content, err := billyutil.ReadFile(fsys, summary.IndexPath)
	if err != nil {
		summary.IndexReadErr = err
		return summary, nil
	}
	summary.IndexContent = string(content)
	return summary, nil
}
