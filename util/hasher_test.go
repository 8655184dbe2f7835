package util

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	billyutil "github.com/go-git/go-billy/v5/util"
)

func TestGetFileHash(t *testing.T) {
	// Create temp directory for test files
	tmpDir := t.TempDir()
	fsys := osfs.New("/")

	emptyFile := filepath.Join(tmpDir, "empty.txt")
	os.WriteFile(emptyFile, []byte{}, 0644)

	helloFile := filepath.Join(tmpDir, "hello.txt")
	os.WriteFile(helloFile, []byte("hello world"), 0644)

	binaryFile := filepath.Join(tmpDir, "binary.bin")
	os.WriteFile(binaryFile, []byte{0x00, 0x01, 0x02, 0xff}, 0644)

	subDir := filepath.Join(tmpDir, "subdir")
	os.Mkdir(subDir, 0755)

	tests := []struct {
		name     string
		path     string
		wantHash string
		wantErr  error
	}{
		{
			name:     "empty file",
			path:     emptyFile,
			wantHash: EmptyFingerprint,
		},
		{
			name:     "hello world file",
			path:     helloFile,
			wantHash: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
		{
			name:     "binary file",
			path:     binaryFile,
			wantHash: "3d1f57c984978ef98a18378c8166c1cb8ede02c03eeb6aee7e2f121dfeee3e56",
		},
		{
			name:    "directory returns error",
			path:    subDir,
			wantErr: ErrExpectedFile,
		},
		{
			name:    "non-existent file",
			path:    filepath.Join(tmpDir, "nonexistent.txt"),
			wantErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := GetFileHash(fsys, tt.path)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetFileHash() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("GetFileHash() unexpected error = %v", err)
				return
			}

			if gotHash != tt.wantHash {
				t.Errorf("GetFileHash() = %v, want %v", gotHash, tt.wantHash)
			}
		})
	}
}

func TestGetFileHash_LargeFile(t *testing.T) {
	fsys := memfs.New()

	// Larger than one chunk and not a multiple of it
	data := make([]byte, 3*ChunkSize+17)
	for i := range data {
		data[i] = byte(i % 251)
	}
	if err := billyutil.WriteFile(fsys, "/a/large.bin", data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := billyutil.WriteFile(fsys, "/b/other-name.dat", data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	first, err := GetFileHash(fsys, "/a/large.bin")
	if err != nil {
		t.Fatalf("GetFileHash() error = %v", err)
	}
	second, err := GetFileHash(fsys, "/b/other-name.dat")
	if err != nil {
		t.Fatalf("GetFileHash() error = %v", err)
	}

	if first != second {
		t.Errorf("identical content hashed differently: %s vs %s", first, second)
	}
	if !IsFingerprint(first) {
		t.Errorf("GetFileHash() = %q, not a 64 character lowercase hex digest", first)
	}
}

func TestGetHash(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		input string
	}{
		{
			name:  "empty input",
			input: "",
			want:  EmptyFingerprint,
		},
		{
			name:  "hello world",
			input: "hello world",
			want:  "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
		{
			name:  "newline at end",
			input: "hello\n",
			want:  "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetHash(strings.NewReader(tt.input))
			if err != nil {
				t.Errorf("GetHash() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("GetHash() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetHash_ChunkingDoesNotMatter(t *testing.T) {
	input := strings.Repeat("dupfinder", 5000)

	whole, err := GetHash(strings.NewReader(input))
	if err != nil {
		t.Fatalf("GetHash() error = %v", err)
	}
	oneByte, err := GetHash(iotest.OneByteReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("GetHash() error = %v", err)
	}
	if whole != oneByte {
		t.Errorf("GetHash() differs by read size: %s vs %s", whole, oneByte)
	}
}

func TestGetHash_ReadErrorDiscardsDigest(t *testing.T) {
	boom := errors.New("disk went away")
	r := io.MultiReader(strings.NewReader(strings.Repeat("x", ChunkSize*2)), iotest.ErrReader(boom))

	got, err := GetHash(r)
	if !errors.Is(err, boom) {
		t.Fatalf("GetHash() error = %v, want %v", err, boom)
	}
	if got != "" {
		t.Errorf("GetHash() returned partial digest %q", got)
	}
}

func TestIsFingerprint(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{EmptyFingerprint, true},
		{strings.ToUpper(EmptyFingerprint), false},
		{EmptyFingerprint[:63], false},
		{EmptyFingerprint + "0", false},
		{strings.Repeat("g", 64), false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsFingerprint(tt.input); got != tt.want {
			t.Errorf("IsFingerprint(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHexCharToInt(t *testing.T) {
	tests := []struct {
		input byte
		want  int
	}{
		{'0', 0}, {'1', 1}, {'9', 9},
		{'a', 10}, {'b', 11}, {'f', 15},
		{'A', -1}, {'g', -1}, {' ', -1},
	}

	for _, tt := range tests {
		got := hexCharToInt(tt.input)
		if got != tt.want {
			t.Errorf("hexCharToInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
