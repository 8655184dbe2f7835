package util

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
)

// ChunkSize is the number of bytes read from a file per hash update.
const ChunkSize = 8 * 1024

// FingerprintLen is the length of a hex-encoded SHA-256 digest.
const FingerprintLen = sha256.Size * 2

// EmptyFingerprint is the SHA-256 digest of zero bytes.
const EmptyFingerprint = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// GetFileHash hashes a file and returns the hash as a lowercase hex string.
// Directories are rejected with ErrExpectedFile.
func GetFileHash(fsys billy.Filesystem, path string) (string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the SHA-256 hash of data from an io.Reader, reading
// ChunkSize bytes at a time. On a read error no digest is returned.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, ChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// IsFingerprint reports whether s looks like a hex-encoded SHA-256 digest.
func IsFingerprint(s string) bool {
	if len(s) != FingerprintLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if hexCharToInt(s[i]) < 0 {
			return false
		}
	}
	return true
}

// hexCharToInt converts a lowercase hex character to its integer value,
// returning -1 for anything else.
func hexCharToInt(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c - 'a' + 10)
	default:
		return -1
	}
}
