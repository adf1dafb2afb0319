package cmd

import (
	"fmt"

	"github.com/harrison/codecat/internal/config"
	"github.com/spf13/cobra"
)

// addSelectionFlags registers the flags shared by run and list that decide
// which files are selected
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .codecat/config.yaml, searched upward)")
	cmd.Flags().String("root", "", "Directory to scan (may also be given as the first argument)")
	cmd.Flags().StringP("output", "o", "", "Output file (default: all_code.txt)")
	cmd.Flags().StringSliceP("ext", "e", nil, "Extension to include, repeatable or comma-separated (default: .py,.js,.dart,.java,.cpp,.ts)")
	cmd.Flags().String("missing-root", "", "What to do when the root is not a directory: warn or fail")
}

// loadConfig resolves the config file, applies every flag the user set and
// validates the result. A positional root argument is treated like --root.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg, path, err := mergeConfig(cmd, args)
	if err != nil {
		return nil, path, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, path, nil
}

// mergeConfig is loadConfig without validation
func mergeConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, path, err := config.Load(configPath)
	if err != nil {
		return nil, path, err
	}

	var o config.Overrides

	if len(args) > 0 {
		if cmd.Flags().Changed("root") {
			return nil, path, fmt.Errorf("cannot use both --root and a root argument")
		}
		root := args[0]
		o.RootDir = &root
	} else if cmd.Flags().Changed("root") {
		root, _ := cmd.Flags().GetString("root")
		o.RootDir = &root
	}

	o.OutputFile = changedString(cmd, "output")
	o.MissingRoot = changedString(cmd, "missing-root")
	o.InvalidBytes = changedString(cmd, "invalid-bytes")
	o.SummaryFile = changedString(cmd, "summary-file")
	o.LogLevel = changedString(cmd, "log-level")
	o.LogDir = changedString(cmd, "log-dir")

	if cmd.Flags().Changed("ext") {
		raw, _ := cmd.Flags().GetStringSlice("ext")
		exts := config.NormalizeExtensions(raw)
		o.Extensions = &exts
	}

	if cmd.Flags().Changed("no-lock") {
		noLock, _ := cmd.Flags().GetBool("no-lock")
		lock := !noLock
		o.LockOutput = &lock
	}

	cfg.MergeWithFlags(o)
	return cfg, path, nil
}

// changedString returns a pointer to the flag value when the user set it.
// Flags the command does not define are treated as unset.
func changedString(cmd *cobra.Command, name string) *string {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
