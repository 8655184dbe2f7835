package dedupe

import (
	"os"
	"path/filepath"
)

// SkipSet holds canonical paths the Organizer must never move.
type SkipSet map[string]struct{}

// NewSkipSet canonicalizes paths into a SkipSet.
func NewSkipSet(paths ...string) SkipSet {
	s := make(SkipSet, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		s[Canonicalize(p)] = struct{}{}
	}
	return s
}

// ExecutableSkipSet protects the running binary. If the executable path
// cannot be determined the set is empty.
func ExecutableSkipSet() SkipSet {
	exe, err := os.Executable()
	if err != nil {
		return NewSkipSet()
	}
	return NewSkipSet(exe)
}

// Contains reports whether path canonicalizes to a member of the set.
func (s SkipSet) Contains(path string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[Canonicalize(path)]
	return ok
}

// Canonicalize makes path absolute and resolves symlinks on the host.
// When the path cannot be resolved the cleaned absolute form is used.
func Canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
