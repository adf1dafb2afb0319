// Package display provides terminal output for warnings and per-file progress.
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Root directory ./src is not usable",
//	    Message:    "No files were matched; the output file is empty.",
//	    Suggestion: "Check --root",
//	}
//	warning.Display(os.Stderr)
//
// WarnMissingRoot and WarnSkippedFiles build the two warnings a run can emit.
//
// # Progress
//
// ProgressIndicator prints one line per appended file:
//
//	progress := display.NewProgressIndicator(os.Stderr, 0)
//	progress.Start("all_code.txt")
//	progress.Step("sub/c.js")
//	progress.Complete("all_code.txt")
//
// # Colors
//
// Colors come from fatih/color and are only emitted when the writer is an
// *os.File attached to a terminal (checked with go-isatty) and NO_COLOR is
// unset. Every other writer receives plain text, which keeps output stable
// for tests and redirected streams.
package display
