package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dendrascience/dupfinder/dedupe"
	"github.com/dustin/go-humanize"
	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand for the dupfinder CLI.
// It reports what a run would scan without hashing anything.
func NewCountCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count the files a run would scan",
		Long: `Count the regular files below a directory and their combined size.

The walk is the same one a full run performs: symbolic links and other
non-regular entries are left out, and unreadable directories are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			root, err := absPath(path)
			if err != nil {
				return err
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			return runCount(cmd.OutOrStdout(), hostFS(), root, newLogger(cmd.ErrOrStderr(), verbose))
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", ".", "Path to count files in")

	return cmd
}

type countResult struct {
	Files int
	Bytes int64
}

func countFiles(fsys billy.Filesystem, root string, opts ...dedupe.Option) (countResult, error) {
	records, err := dedupe.NewScanner(fsys, root, opts...).Scan()
	if err != nil {
		return countResult{}, err
	}

	res := countResult{Files: len(records)}
	for _, r := range records {
		fi, err := fsys.Stat(r.Path)
		if err != nil {
			return countResult{}, fmt.Errorf("stat %s: %w", r.Path, err)
		}
		res.Bytes += fi.Size()
	}
	return res, nil
}

func runCount(out io.Writer, fsys billy.Filesystem, root string, logger *slog.Logger) error {
	res, err := countFiles(fsys, root, dedupe.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("error counting files: %w", err)
	}

	fmt.Fprintf(out, "Total files: %s\n", humanize.Comma(int64(res.Files)))
	fmt.Fprintf(out, "Total size: %s\n", humanize.IBytes(uint64(res.Bytes)))
	return nil
}
