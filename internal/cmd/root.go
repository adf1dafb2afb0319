package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for codecat
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codecat",
		Short: "Concatenate source files from a directory tree into one file",
		Long: `Codecat walks a directory tree, selects files by extension, and
concatenates their contents into a single output file.

Each file is preceded by a header naming its path relative to the root:

  ===== sub/c.js =====

Files are written depth-first in lexical order. Unreadable files are
skipped with a warning; every other file is still written.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
