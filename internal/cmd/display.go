package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dendrascience/dupfinder/dedupe"
	"github.com/mattn/go-isatty"
	"github.com/taigrr/colorhash"
)

// shortFingerprint is how many fingerprint characters the group list shows.
const shortFingerprint = 12

type printer struct {
	out   io.Writer
	color bool
}

func newPrinter(out io.Writer, noColor bool) *printer {
	return &printer{out: out, color: !noColor && isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// groupColor maps a fingerprint onto the 216-colour cube of a 256-colour
// terminal, so a group keeps its colour from run to run.
func groupColor(fingerprint string) int {
	n := colorhash.HashString(fingerprint) % 216
	if n < 0 {
		n = -n
	}
	return 16 + n
}

func (p *printer) paint(fingerprint, s string) string {
	if !p.color {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", groupColor(fingerprint), s)
}

func (p *printer) groups(groups []dedupe.OrganizedGroup) {
	for i, g := range groups {
		fp := g.Fingerprint
		if len(fp) > shortFingerprint {
			fp = fp[:shortFingerprint]
		}
		label := fmt.Sprintf("[%d] %s", i+1, fp)
		fmt.Fprintf(p.out, "  %s  %d files -> %s\n", p.paint(g.Fingerprint, label), g.Group.Len(), g.Folder)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
