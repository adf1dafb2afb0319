package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ProgressIndicator prints one line per file appended to the output
type ProgressIndicator struct {
	writer     io.Writer
	totalFiles int // 0 when the total is not known up front
	current    int
	quiet      bool // count steps without printing them
}

// NewProgressIndicator creates a new progress indicator.
// Pass total 0 when files are streamed and the count is unknown.
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:     w,
		totalFiles: total,
		current:    0,
	}
}

// SetQuiet suppresses the header and per-file lines; Complete still prints
func (p *ProgressIndicator) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// Start displays the header message
func (p *ProgressIndicator) Start(output string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.writer, "Writing %s:\n", output)
}

// Step displays progress for one file: [N/Total] path, or [N] path when the total is unknown
func (p *ProgressIndicator) Step(relPath string) {
	p.current++
	if p.quiet {
		return
	}
	var line string
	if p.totalFiles > 0 {
		line = fmt.Sprintf("  [%d/%d] %s", p.current, p.totalFiles, relPath)
	} else {
		line = fmt.Sprintf("  [%d] %s", p.current, relPath)
	}
	fmt.Fprintln(p.writer, paint(p.writer, color.FgCyan).Sprint(line))
}

// Count returns the number of steps displayed so far
func (p *ProgressIndicator) Count() int {
	return p.current
}

// Complete displays the success line with a green checkmark
func (p *ProgressIndicator) Complete(output string) {
	check := paint(p.writer, color.FgGreen).Sprint("✓")
	noun := "files"
	if p.current == 1 {
		noun = "file"
	}
	fmt.Fprintf(p.writer, "%s Wrote %d %s to %s\n", check, p.current, noun, output)
}
