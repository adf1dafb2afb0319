package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/codecat/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when out is a terminal
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	fmt.Fprint(out, paint(out, color.FgYellow).Sprint(b.String()))
}

// WarnMissingRoot creates the warning shown when the root directory does not
// exist or is not a directory and the run continues with zero matches
func WarnMissingRoot(root string, cause error) Warning {
	msg := "No files were matched; the output file is empty."
	if cause != nil {
		msg = fmt.Sprintf("%v. No files were matched; the output file is empty.", cause)
	}
	return Warning{
		Title:      fmt.Sprintf("Root directory %s is not usable", root),
		Message:    msg,
		Suggestion: "Check --root, or use --missing-root=fail to make this an error",
	}
}

// WarnSkippedFiles creates the warning listing matched files that could not
// be read and were left out of the output
func WarnSkippedFiles(skipped []models.SkippedFile) Warning {
	files := make([]string, 0, len(skipped))
	for _, sk := range skipped {
		files = append(files, fmt.Sprintf("%s (%s)", sk.RelPath, sk.Reason))
	}

	title := fmt.Sprintf("%d matched files could not be read", len(skipped))
	if len(skipped) == 1 {
		title = "1 matched file could not be read"
	}

	return Warning{
		Title:   title,
		Message: "These files were skipped; every other file was written.",
		Files:   files,
	}
}
