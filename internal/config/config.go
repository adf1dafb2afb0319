package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Invalid byte handling policies
const (
	InvalidBytesReplace = "replace" // Substitute U+FFFD for ill-formed sequences
	InvalidBytesDrop    = "drop"    // Remove ill-formed sequences
)

// Missing root policies
const (
	MissingRootWarn = "warn" // Log a warning and produce an empty output
	MissingRootFail = "fail" // Abort before the output is created
)

// DefaultOutputFile is the output path used when none is configured
const DefaultOutputFile = "all_code.txt"

// DefaultExtensions returns the extension filter used when none is configured
func DefaultExtensions() []string {
	return []string{".py", ".js", ".dart", ".java", ".cpp", ".ts"}
}

// Config represents codecat configuration options
type Config struct {
	// RootDir is the directory to scan (required)
	RootDir string `yaml:"root_dir"`

	// OutputFile is the concatenated output path, relative to the working directory
	OutputFile string `yaml:"output_file"`

	// Extensions is the case-sensitive suffix filter (e.g., ".py")
	Extensions []string `yaml:"extensions"`

	// InvalidBytes selects how ill-formed UTF-8 is decoded (replace, drop)
	InvalidBytes string `yaml:"invalid_bytes"`

	// MissingRoot selects what happens when RootDir is not a directory (warn, fail)
	MissingRoot string `yaml:"missing_root"`

	// LockOutput guards the output with an advisory "<output>.lock" file
	LockOutput bool `yaml:"lock_output"`

	// SummaryFile is an optional YAML run summary path
	SummaryFile string `yaml:"summary_file"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables per-run log files in this directory when set
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		RootDir:      "",
		OutputFile:   DefaultOutputFile,
		Extensions:   DefaultExtensions(),
		InvalidBytes: InvalidBytesReplace,
		MissingRoot:  MissingRootWarn,
		LockOutput:   true,
		SummaryFile:  "",
		LogLevel:     "info",
		LogDir:       "",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Detect which keys were present so explicit false/empty values win over defaults
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	present := func(key string) bool {
		_, ok := rawMap[key]
		return ok
	}

	if fileCfg.RootDir != "" {
		cfg.RootDir = fileCfg.RootDir
	}
	if fileCfg.OutputFile != "" {
		cfg.OutputFile = fileCfg.OutputFile
	}
	if present("extensions") {
		cfg.Extensions = fileCfg.Extensions
	}
	if fileCfg.InvalidBytes != "" {
		cfg.InvalidBytes = fileCfg.InvalidBytes
	}
	if fileCfg.MissingRoot != "" {
		cfg.MissingRoot = fileCfg.MissingRoot
	}
	if present("lock_output") {
		cfg.LockOutput = fileCfg.LockOutput
	}
	if present("summary_file") {
		cfg.SummaryFile = fileCfg.SummaryFile
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if present("log_dir") {
		cfg.LogDir = fileCfg.LogDir
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .codecat/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ConfigDirName, ConfigFileName))
}

// Overrides carries CLI flag values; nil fields were not set by the user
type Overrides struct {
	RootDir      *string
	OutputFile   *string
	Extensions   *[]string
	InvalidBytes *string
	MissingRoot  *string
	LockOutput   *bool
	SummaryFile  *string
	LogLevel     *string
	LogDir       *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(o Overrides) {
	if o.RootDir != nil {
		c.RootDir = *o.RootDir
	}
	if o.OutputFile != nil {
		c.OutputFile = *o.OutputFile
	}
	if o.Extensions != nil {
		c.Extensions = *o.Extensions
	}
	if o.InvalidBytes != nil {
		c.InvalidBytes = *o.InvalidBytes
	}
	if o.MissingRoot != nil {
		c.MissingRoot = *o.MissingRoot
	}
	if o.LockOutput != nil {
		c.LockOutput = *o.LockOutput
	}
	if o.SummaryFile != nil {
		c.SummaryFile = *o.SummaryFile
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
}

// NormalizeExtensions splits comma-separated entries, trims whitespace and
// drops empty entries and duplicates while keeping the first occurrence order
func NormalizeExtensions(raw []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, ext := range strings.Split(entry, ",") {
			ext = strings.TrimSpace(ext)
			if ext == "" || seen[ext] {
				continue
			}
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return out
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RootDir) == "" {
		return fmt.Errorf("root_dir is required")
	}

	if strings.TrimSpace(c.OutputFile) == "" {
		return fmt.Errorf("output_file cannot be empty")
	}

	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid extension %q, must start with '.' followed by a suffix", ext)
		}
	}

	switch c.InvalidBytes {
	case InvalidBytesReplace, InvalidBytesDrop:
	default:
		return fmt.Errorf("invalid invalid_bytes %q, must be one of: replace, drop", c.InvalidBytes)
	}

	switch c.MissingRoot {
	case MissingRootWarn, MissingRootFail:
	default:
		return fmt.Errorf("invalid missing_root %q, must be one of: warn, fail", c.MissingRoot)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}
