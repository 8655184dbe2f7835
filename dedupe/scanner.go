package dedupe

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dendrascience/dupfinder/util"
	"github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"
)

// maxRootLinks bounds how many symlinks are followed to reach the root.
const maxRootLinks = 40

// Scanner lists the regular files below a root directory.
type Scanner struct {
	fs     billy.Filesystem
	root   string
	logger *slog.Logger
}

// NewScanner creates a Scanner for root on fsys.
func NewScanner(fsys billy.Filesystem, root string, opts ...Option) *Scanner {
	o := newOptions(opts)
	return &Scanner{fs: fsys, root: filepath.Clean(root), logger: o.logger}
}

// Scan walks the tree and returns every regular file in discovery order
// (lexical within each directory). Symlinks below the root are not
// followed. Entries that cannot be read are skipped; an unusable root or
// a file whose metadata cannot be read fails the whole scan.
func (s *Scanner) Scan() ([]FileRecord, error) {
	info, err := s.fs.Stat(s.root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", s.root, util.ErrExpectedDirectory)
	}

	walkRoot, err := s.resolveRoot()
	if err != nil {
		return nil, err
	}

	files := make([]FileRecord, 0, 128)
	err = billyutil.Walk(s.fs, walkRoot, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if path == walkRoot {
				return walkErr
			}
			s.logger.Warn("skipping unreadable entry", "path", path, "error", walkErr)
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		if walkRoot != s.root {
			rel, err := filepath.Rel(walkRoot, path)
			if err != nil {
				return err
			}
			path = filepath.Join(s.root, rel)
		}

		rec, err := NewFileRecord(s.fs, path)
		if err != nil {
			return err
		}
		files = append(files, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("scan complete", "root", s.root, "files", len(files))
	return files, nil
}

// resolveRoot follows the root itself when it is a symlink, so that a
// linked directory is walked. Paths handed out still start with s.root.
func (s *Scanner) resolveRoot() (string, error) {
	current := s.root
	for range maxRootLinks {
		info, err := s.fs.Lstat(current)
		if err != nil {
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return current, nil
		}
		target, err := s.fs.Readlink(current)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = filepath.Clean(target)
	}
	return "", fmt.Errorf("%s: too many levels of symbolic links", s.root)
}
