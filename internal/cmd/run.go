package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harrison/codecat/internal/concat"
	"github.com/harrison/codecat/internal/display"
	"github.com/harrison/codecat/internal/logger"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [root]",
		Short: "Concatenate matching files into the output file",
		Long: `Concatenate every matching file under the root directory into one file.

The output file is created or truncated, then each matching file is
appended as:

  <blank line><blank line>===== <relative path> =====<blank line><blank line><contents>

Configuration is loaded from .codecat/config.yaml if present (searched
upward from the working directory, or set with --config or CODECAT_CONFIG).
CLI flags override configuration file settings.

Examples:
  codecat run ./src
  codecat run --root ./src -o bundle.txt
  codecat run ./src -e .go -e .mod
  codecat run ./src --ext .py,.pyi --invalid-bytes drop
  codecat run ./src --missing-root fail --summary-file summary.yaml
  codecat run ./src --verbose --log-dir .codecat/logs`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCommand,
	}

	addSelectionFlags(cmd)
	cmd.Flags().String("invalid-bytes", "", "How to decode ill-formed UTF-8: replace or drop")
	cmd.Flags().Bool("no-lock", false, "Do not guard the output with a <output>.lock file")
	cmd.Flags().String("summary-file", "", "Write a YAML run summary to this path")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().Bool("verbose", false, "Show each file as it is written (implies --log-level debug)")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, configPath, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	// Verbose flag overrides the configured level
	verbose, _ := cmd.Flags().GetBool("verbose")
	logLevel := cfg.LogLevel
	if verbose {
		logLevel = "debug"
	}

	runID := uuid.New().String()
	consoleLog := logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)
	log := logger.Multi(consoleLog)

	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLoggerWithLevel(cfg.LogDir, logLevel, runID)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
		log = logger.Multi(consoleLog, fileLog)
	}

	if configPath != "" {
		log.LogDebug(fmt.Sprintf("Using config %s", configPath))
	}

	progress := display.NewProgressIndicator(cmd.OutOrStdout(), 0)
	progress.SetQuiet(!verbose)
	progress.Start(cfg.OutputFile)

	c := concat.New(cfg, log,
		concat.WithRunID(runID),
		concat.WithProgress(progress.Step),
		concat.WithMissingRootHandler(func(root string, cause error) {
			display.WarnMissingRoot(root, cause).Display(cmd.ErrOrStderr())
		}),
	)

	summary, err := c.Run()
	if err != nil {
		return fmt.Errorf("concatenation failed: %w", err)
	}

	if summary.HasSkipped() {
		display.WarnSkippedFiles(summary.Skipped).Display(cmd.ErrOrStderr())
	}

	progress.Complete(cfg.OutputFile)
	return nil
}
