package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/dendrascience/dupfinder/dedupe"
	"github.com/dendrascience/dupfinder/version"
	"github.com/dustin/go-humanize"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

type findOptions struct {
	path    string
	workers int
	dryRun  bool
	verbose bool
	noColor bool
}

// NewRootCmd creates and returns the root cobra command for the dupfinder CLI.
// Run without a subcommand it finds and organizes duplicates under PATH.
func NewRootCmd() *cobra.Command {
	var opts findOptions

	rootCmd := &cobra.Command{
		Use:   "dupfinder [PATH]",
		Short: "dupfinder - find duplicate files and gather them into per-group folders",
		Long: `dupfinder finds files with identical content below a directory.

Every file is fingerprinted with SHA-256. Each set of two or more identical
files is moved into PATH/duplicates/<fingerprint>_<original-name>, and a
report listing every group and the space that could be reclaimed is written
to PATH/duplicate_files_index.txt.

Use subcommands for related tasks:
  - count: Count the files that would be scanned
  - verify: Re-hash organized folders and report files that no longer match
  - seed: Generate a test tree full of duplicates
  - version: Print version and build information`,
		Version:      version.GetFullVersion(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.path = args[0]
			}
			return runFind(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.path, "path", "p", ".", "Directory to scan")
	rootCmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, fmt.Sprintf("Files to hash in parallel (this machine has %d CPUs)", runtime.NumCPU()))
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be done without making changes")
	rootCmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured group output")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging on stderr")

	groupUtilities := "utilities"
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	countCmd := NewCountCmd()
	verifyCmd := NewVerifyCmd()
	seedCmd := NewSeedCmd()
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.Fprint(cmd.OutOrStdout(), "dupfinder")
		},
	}

	countCmd.GroupID = groupUtilities
	verifyCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities

	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// hostFS returns the host filesystem; callers pass absolute paths.
func hostFS() billy.Filesystem {
	return osfs.New("/")
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}

func runFind(ctx context.Context, stdout, stderr io.Writer, opts findOptions) error {
	root, err := absPath(opts.path)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Scanning directory: %s\n", root)
	fmt.Fprintln(stdout, "Finding duplicate files...")

	summary, err := dedupe.Execute(ctx, hostFS(), root,
		dedupe.WithLogger(newLogger(stderr, opts.verbose)),
		dedupe.WithWorkers(opts.workers),
		dedupe.WithDryRun(opts.dryRun),
	)
	if err != nil {
		return err
	}

	p := newPrinter(stdout, opts.noColor)
	fmt.Fprintf(stdout, "Found %s files to process\n", humanize.Comma(int64(summary.FilesScanned)))
	fmt.Fprintf(stdout, "Found %s groups of duplicate files\n", humanize.Comma(int64(summary.DuplicateGroupCount)))
	p.groups(summary.Groups)

	switch {
	case !summary.DuplicatesFound:
		fmt.Fprintln(stdout, "No duplicate files found!")
	case summary.DryRun:
		fmt.Fprintf(stdout, "Dry run: nothing was moved. About %s could be freed.\n", humanize.IBytes(uint64(summary.FreedBytes)))
	default:
		fmt.Fprintln(stdout, "Successfully organized duplicate files!")
		fmt.Fprintf(stdout, "Check the '%s' folder for organized files. About %s can be freed.\n",
			dedupe.DuplicatesDir, humanize.IBytes(uint64(summary.FreedBytes)))
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "=== COMPREHENSIVE DUPLICATE FILES INDEX ===")
	if summary.IndexReadErr != nil {
		fmt.Fprintf(stderr, "Warning: Could not read index file: %v\n", summary.IndexReadErr)
		fmt.Fprintf(stderr, "The index file should be available at: %s\n", summary.IndexPath)
	} else {
		fmt.Fprintln(stdout, summary.IndexContent)
	}
	fmt.Fprintln(stdout, "=== END OF INDEX ===")
	return nil
}
