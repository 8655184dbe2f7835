package cmd

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	billyutil "github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	// maxFilesPerDir caps how many seeded files land in one directory.
	maxFilesPerDir = 1000
	// seedDays is the number of days in 2024, the year every tree is laid out in.
	seedDays = 366
	// seedCapacity is the most files the year, month and day folders can hold.
	seedCapacity = (1 + 12 + seedDays) * maxFilesPerDir
)

// NewSeedCmd creates and returns the seed subcommand for the dupfinder CLI.
// It generates a tree of small files drawn from a fixed content pool so
// that most of them are duplicates of one another.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		poolSize   int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a test tree full of duplicate files",
		Long: `Generate a directory tree for exercising dupfinder.

Creates files in a YYYY/MM/DD directory structure, some at the year or month
level. Each file holds a single UUID line picked from a pool of --pool
distinct UUIDs, so a tree of --count files contains at most --pool distinct
contents. A directory holds at most 1000 files, which limits --count to
379000.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := absPath(outputPath)
			if err != nil {
				return err
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			var progress io.Writer = io.Discard
			if verbose {
				progress = cmd.OutOrStdout()
			}
			stats, err := seedTree(hostFS(), root, fileCount, poolSize, progress)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d files across %d directories in %s\n",
				stats.Files, stats.Dirs, root)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 10000, "Number of files to generate")
	cmd.Flags().IntVar(&poolSize, "pool", 50, "Number of distinct file contents")

	cmd.MarkFlagRequired("output")

	return cmd
}

type seedStats struct {
	Files int
	Dirs  int
}

func randInt(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0
	}
	return v.Int64()
}

func seedTree(fsys billy.Filesystem, outputPath string, fileCount, poolSize int, progress io.Writer) (seedStats, error) {
	if fileCount < 0 {
		return seedStats{}, fmt.Errorf("count must not be negative, got %d", fileCount)
	}
	if fileCount > seedCapacity {
		return seedStats{}, fmt.Errorf("count must be at most %d, got %d", seedCapacity, fileCount)
	}
	if poolSize < 1 {
		return seedStats{}, fmt.Errorf("pool must be at least 1, got %d", poolSize)
	}

	fmt.Fprintf(progress, "Generating %d test files in %s\n", fileCount, outputPath)
	if err := fsys.MkdirAll(outputPath, 0o755); err != nil {
		return seedStats{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	pool := make([]string, poolSize)
	for i := range pool {
		pool[i] = uuid.New().String()
	}

	created := 0
	dirFileCounts := make(map[string]int)
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for created < fileCount {
		fileTime := baseTime.AddDate(0, 0, int(randInt(seedDays)))
		year := fmt.Sprintf("%04d", fileTime.Year())
		month := fmt.Sprintf("%02d", fileTime.Month())
		day := fmt.Sprintf("%02d", fileTime.Day())

		var dirPath string
		switch level := randInt(100); {
		case level < 10:
			dirPath = filepath.Join(outputPath, year)
		case level < 30:
			dirPath = filepath.Join(outputPath, year, month)
		default:
			dirPath = filepath.Join(outputPath, year, month, day)
		}
		if dirFileCounts[dirPath] >= maxFilesPerDir {
			continue
		}

		ext := ".json"
		if randInt(2) == 1 {
			ext = ".txt"
		}
		filePath := filepath.Join(dirPath, fmt.Sprintf("%08x%s", randInt(0xFFFFFFFF), ext))
		if _, err := fsys.Lstat(filePath); err == nil {
			continue
		}

		if err := fsys.MkdirAll(dirPath, 0o755); err != nil {
			return seedStats{}, fmt.Errorf("failed to create directory %s: %w", dirPath, err)
		}
		content := pool[randInt(int64(poolSize))] + "\n"
		if err := billyutil.WriteFile(fsys, filePath, []byte(content), 0o644); err != nil {
			return seedStats{}, fmt.Errorf("failed to write file %s: %w", filePath, err)
		}

		dirFileCounts[dirPath]++
		created++
		if created%1000 == 0 {
			fmt.Fprintf(progress, "Created %d/%d files...\n", created, fileCount)
		}
	}

	return seedStats{Files: created, Dirs: len(dirFileCounts)}, nil
}
