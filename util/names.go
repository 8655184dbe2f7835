package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// FolderName builds the name of the folder that collects one duplicate
// group: the fingerprint, an underscore, then the original's file name.
func FolderName(fingerprint, original string) string {
	return fingerprint + "_" + original
}

// FingerprintFromFolderName splits a folder name produced by FolderName
// back into its fingerprint and original file name.
func FingerprintFromFolderName(name string) (fingerprint, original string, err error) {
	if len(name) < FingerprintLen+2 || name[FingerprintLen] != '_' {
		return "", "", ErrInvalidFolderName
	}
	fingerprint = name[:FingerprintLen]
	if !IsFingerprint(fingerprint) {
		return "", "", ErrInvalidFolderName
	}
	return fingerprint, name[FingerprintLen+1:], nil
}

// SplitName splits a file name at its last dot. A leading dot does not
// start an extension, so ".bashrc" has no extension.
func SplitName(name string) (stem, ext string, hasExt bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, "", false
	}
	return name[:i], name[i+1:], true
}

// CopyName returns the n-th collision variant of name:
// "report.pdf" becomes "report_copy1.pdf", "README" becomes "README_copy1".
func CopyName(name string, n int) string {
	stem, ext, hasExt := SplitName(name)
	if hasExt && ext != "" {
		return fmt.Sprintf("%s_copy%d.%s", stem, n, ext)
	}
	return fmt.Sprintf("%s_copy%d", stem, n)
}

// UniqueDestination returns a path inside dir for a file called name that
// does not exist yet. The plain name is tried first, then CopyName
// variants starting at 1.
func UniqueDestination(fsys billy.Filesystem, dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	for n := 1; ; n++ {
		taken, err := exists(fsys, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = filepath.Join(dir, CopyName(name, n))
	}
}

// exists uses Lstat so that a dangling symlink still counts as taken.
func exists(fsys billy.Filesystem, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
