package dedupe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dendrascience/dupfinder/util"
	"github.com/go-git/go-billy/v5"
)

// FolderCheck is the verification result for one group folder.
type FolderCheck struct {
	Folder      string
	Fingerprint string
	Files       []string
	Mismatched  []string
}

// VerifyReport summarizes a Verify run.
type VerifyReport struct {
	Folders []FolderCheck
	// Skipped lists entries of the duplicates directory that are not
	// group folders.
	Skipped []string
}

// OK reports whether every checked file matched its folder's fingerprint.
func (r VerifyReport) OK() bool {
	for _, f := range r.Folders {
		if len(f.Mismatched) > 0 {
			return false
		}
	}
	return true
}

// Verify re-hashes the files in every group folder under
// <root>/duplicates and flags those whose content no longer matches the
// fingerprint in the folder name. A missing duplicates directory yields
// an empty report.
func Verify(fsys billy.Filesystem, root string, opts ...Option) (VerifyReport, error) {
	o := newOptions(opts)
	var report VerifyReport

	dir := filepath.Join(filepath.Clean(root), DuplicatesDir)
	entries, err := fsys.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("read %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !entry.IsDir() {
			report.Skipped = append(report.Skipped, path)
			continue
		}
		fp, _, err := util.FingerprintFromFolderName(entry.Name())
		if err != nil {
			o.logger.Debug("not a group folder", "path", path)
			report.Skipped = append(report.Skipped, path)
			continue
		}

		check, err := verifyFolder(fsys, path, fp)
		if err != nil {
			return report, err
		}
		report.Folders = append(report.Folders, check)
	}
	return report, nil
}

func verifyFolder(fsys billy.Filesystem, folder, fingerprint string) (FolderCheck, error) {
	check := FolderCheck{Folder: folder, Fingerprint: fingerprint}

	files, err := fsys.ReadDir(folder)
	if err != nil {
		return check, fmt.Errorf("read %s: %w", folder, err)
	}
	for _, f := range files {
		if !f.Mode().IsRegular() {
			continue
		}
		path := filepath.Join(folder, f.Name())
		got, err := util.GetFileHash(fsys, path)
		if err != nil {
			return check, fmt.Errorf("hash %s: %w", path, err)
		}
		check.Files = append(check.Files, path)
		if got != fingerprint {
			check.Mismatched = append(check.Mismatched, path)
		}
	}
	return check, nil
}
