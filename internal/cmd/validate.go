package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harrison/codecat/internal/config"
	"github.com/harrison/codecat/internal/filelock"
	"github.com/harrison/codecat/internal/fileutil"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [root]",
		Short: "Check configuration, root and output without writing anything",
		Long: `Check that a run would start, checking for:
  - A valid configuration (config file merged with flags)
  - A usable root directory
  - An output path whose directory exists
  - No other run holding the output lock

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := mergeConfig(cmd, args)
			if err != nil {
				return err
			}
			return validateRunWithOutput(cfg, path, cmd.OutOrStdout())
		},
	}

	addSelectionFlags(cmd)
	cmd.Flags().Bool("no-lock", false, "Skip the output lock check")

	return cmd
}

// validateRunWithOutput reports every problem that would stop a run
func validateRunWithOutput(cfg *config.Config, configPath string, output io.Writer) error {
	var errs []string

	if configPath != "" {
		fmt.Fprintf(output, "✓ Loaded config from %s\n", configPath)
	} else {
		fmt.Fprintf(output, "✓ No config file found, using defaults\n")
	}

	if err := cfg.Validate(); err != nil {
		// Later checks depend on a valid configuration
		fmt.Fprintf(output, "\n✗ Validation failed\n")
		fmt.Fprintf(output, "  ✗ %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}
	fmt.Fprintf(output, "✓ Configuration is valid\n")

	if rootErr := fileutil.CheckRoot(cfg.RootDir); rootErr != nil {
		if cfg.MissingRoot == config.MissingRootFail {
			errs = append(errs, fmt.Sprintf("root: %v", rootErr))
		} else {
			fmt.Fprintf(output, "⚠ Root is not usable (%v); a run would write an empty output\n", rootErr)
		}
	} else {
		matches, result, err := fileutil.ScanMatches(cfg.RootDir, fileutil.WalkOptions{
			Extensions:   cfg.Extensions,
			ExcludePaths: []string{cfg.OutputFile},
		})
		if err != nil {
			errs = append(errs, fmt.Sprintf("root: %v", err))
		} else {
			fmt.Fprintf(output, "✓ Root %s has %d matching file(s)\n", cfg.RootDir, len(matches))
			if n := len(result.Errors); n > 0 {
				fmt.Fprintf(output, "⚠ %d director(ies) could not be read\n", n)
			}
		}
	}

	if err := checkOutputPath(cfg.OutputFile); err != nil {
		errs = append(errs, fmt.Sprintf("output: %v", err))
	} else {
		fmt.Fprintf(output, "✓ Output %s can be created\n", cfg.OutputFile)

		if cfg.LockOutput {
			if err := checkOutputLock(cfg.OutputFile); err != nil {
				errs = append(errs, fmt.Sprintf("output: %v", err))
			} else {
				fmt.Fprintf(output, "✓ Output is not in use\n")
			}
		}
	}

	if len(errs) == 0 {
		fmt.Fprintf(output, "\n✓ Ready to run!\n")
		return nil
	}

	fmt.Fprintf(output, "\n✗ Validation failed\n")
	for _, errMsg := range errs {
		fmt.Fprintf(output, "  ✗ %s\n", errMsg)
	}
	fmt.Fprintf(output, "\nFound %d validation error(s)!\n", len(errs))

	return fmt.Errorf("validation failed with %d error(s)", len(errs))
}

// checkOutputPath reports whether the output's directory exists and the
// output itself is not a directory
func checkOutputPath(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// checkOutputLock takes and immediately releases the output lock
func checkOutputLock(path string) error {
	lock := filelock.NewFileLock(filelock.LockPathFor(path))
	if err := lock.Acquire(); err != nil {
		if errors.Is(err, filelock.ErrLocked) {
			return fmt.Errorf("%s is in use by another run", path)
		}
		return err
	}
	return lock.Release()
}
