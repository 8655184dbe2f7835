package dedupe

import "github.com/go-git/go-billy/v5"

// FileRecord is a file that existed when the tree was scanned. Size and
// fingerprint are not cached; later stages read them when they need them.
type FileRecord struct {
	Path string
}

// NewFileRecord returns a record for path, failing if path cannot be
// stat'ed right now.
func NewFileRecord(fsys billy.Filesystem, path string) (FileRecord, error) {
	if _, err := fsys.Stat(path); err != nil {
		return FileRecord{}, err
	}
	return FileRecord{Path: path}, nil
}
