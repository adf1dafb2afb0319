package cmd

import (
	"fmt"

	"github.com/harrison/codecat/internal/config"
	"github.com/harrison/codecat/internal/display"
	"github.com/harrison/codecat/internal/fileutil"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [root]",
		Short: "List the files a run would include, without writing anything",
		Long: `List the relative paths of every file a run would include, one per line,
in the order they would be written. The output file is not created.

Examples:
  codecat list ./src
  codecat list ./src -e .go`,
		Args: cobra.MaximumNArgs(1),
		RunE: listCommand,
	}

	addSelectionFlags(cmd)

	return cmd
}

// listCommand implements the list command logic
func listCommand(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	if rootErr := fileutil.CheckRoot(cfg.RootDir); rootErr != nil {
		if cfg.MissingRoot == config.MissingRootFail {
			return fmt.Errorf("root directory is not usable: %w", rootErr)
		}
		display.WarnMissingRoot(cfg.RootDir, rootErr).Display(cmd.ErrOrStderr())
		return nil
	}

	matches, result, err := fileutil.ScanMatches(cfg.RootDir, fileutil.WalkOptions{
		Extensions:   cfg.Extensions,
		ExcludePaths: []string{cfg.OutputFile},
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", cfg.RootDir, err)
	}

	for _, m := range matches {
		fmt.Fprintln(cmd.OutOrStdout(), m.RelPath)
	}
	for _, werr := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", werr)
	}
	return nil
}
