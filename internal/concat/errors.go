package concat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutputInUse is returned when another run holds the output lock.
var ErrOutputInUse = errors.New("output is in use by another run")

// ConfigError is a fatal problem with the run's inputs, reported before the
// output file is touched.
type ConfigError struct {
	Field   string // Configuration field at fault (e.g., "root_dir")
	Message string // Human-readable error message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// OutputError is a fatal problem creating, locking or writing the output file.
type OutputError struct {
	Path string // Output file path
	Op   string // Operation that failed: "lock", "create", "write", "close"
	Err  error  // Underlying error
}

// Error implements the error interface for OutputError.
func (e *OutputError) Error() string {
	return fmt.Sprintf("output %s: %s failed: %v", e.Path, e.Op, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *OutputError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsOutputError reports whether err is or wraps an OutputError.
func IsOutputError(err error) bool {
	var oe *OutputError
	return errors.As(err, &oe)
}
