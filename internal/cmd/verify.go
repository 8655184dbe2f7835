package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dendrascience/dupfinder/dedupe"
	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates and returns the verify subcommand for the dupfinder CLI.
// It checks that organized group folders still hold what their names claim.
func NewVerifyCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "verify [PATH]",
		Short: "Check organized duplicate folders against their fingerprints",
		Long: `Re-hash every file under PATH/duplicates and compare it with the
fingerprint encoded in its folder name.

Files edited after they were organized show up as mismatches and the
command exits with an error. Entries that are not group folders are listed
and otherwise ignored.`,
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
			return runVerify(cmd.OutOrStdout(), hostFS(), root, newLogger(cmd.ErrOrStderr(), verbose), verbose)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", ".", "Directory that was organized")

	return cmd
}

func runVerify(out io.Writer, fsys billy.Filesystem, root string, logger *slog.Logger, verbose bool) error {
	report, err := dedupe.Verify(fsys, root, dedupe.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("error verifying duplicates: %w", err)
	}

	var files, mismatched int
	for _, f := range report.Folders {
		files += len(f.Files)
		mismatched += len(f.Mismatched)
		if verbose {
			fmt.Fprintf(out, "Checked %s (%d files)\n", f.Folder, len(f.Files))
		}
		for _, m := range f.Mismatched {
			fmt.Fprintf(out, "MISMATCH %s\n", m)
		}
	}
	for _, s := range report.Skipped {
		fmt.Fprintf(out, "Skipped %s\n", s)
	}

	fmt.Fprintf(out, "Verified %d files in %d folders\n", files, len(report.Folders))
	if !report.OK() {
		return fmt.Errorf("verification failed: %d of %d files do not match their folder", mismatched, files)
	}
	return nil
}
