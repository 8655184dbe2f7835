// Package cmd provides the command-line interface implementation for dupfinder.
//
// The root command runs the whole pipeline against a directory: scan, hash,
// group, move duplicates into per-group folders and write the report. The
// remaining subcommands are utilities:
//   - count: Count the files a run would scan
//   - verify: Re-hash organized folders against their fingerprints
//   - seed: Generate a test tree full of duplicates
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. All filesystem access goes through
// a billy.Filesystem rooted at "/", so paths are made absolute first.
package cmd
