// Package main provides the dupfinder command-line interface.
//
// dupfinder walks a directory, fingerprints every regular file with SHA-256
// and gathers files with identical content into folders under
// <dir>/duplicates. A report of every group and the space that removing the
// extra copies would free is written to <dir>/duplicate_files_index.txt and
// echoed to the terminal.
//
// The binary supports these subcommands besides the default run:
//   - count: Count the files a run would scan
//   - verify: Re-hash organized folders against their fingerprints
//   - seed: Generate a test tree full of duplicates
package main
