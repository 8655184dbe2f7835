package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")
	ErrRelativePath      = errors.New("path must be absolute")

	// Duplicate folder naming errors
	ErrInvalidFolderName = errors.New("invalid duplicate folder name")
)
