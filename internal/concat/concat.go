package concat

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/codecat/internal/config"
	"github.com/harrison/codecat/internal/filelock"
	"github.com/harrison/codecat/internal/fileutil"
	"github.com/harrison/codecat/internal/logger"
	"github.com/harrison/codecat/internal/models"
	"gopkg.in/yaml.v3"
)

// Concatenator performs a single concatenation run.
type Concatenator struct {
	cfg    *config.Config
	logger logger.Logger

	// Optional settings applied through Option
	runID         string
	onFile        func(relPath string)
	onMissingRoot func(root string, cause error)
	now           func() time.Time
}

// Option configures a Concatenator.
type Option func(*Concatenator)

// WithRunID sets the run identifier recorded in the summary. A random UUID
// is used when none is given.
func WithRunID(id string) Option {
	return func(c *Concatenator) {
		c.runID = id
	}
}

// WithProgress registers a callback invoked after each file is appended.
func WithProgress(fn func(relPath string)) Option {
	return func(c *Concatenator) {
		c.onFile = fn
	}
}

// WithMissingRootHandler registers a callback invoked when the root is not
// a usable directory and the run continues under the warn policy.
func WithMissingRootHandler(fn func(root string, cause error)) Option {
	return func(c *Concatenator) {
		c.onMissingRoot = fn
	}
}

// New creates a Concatenator for cfg. A nil logger discards all messages.
func New(cfg *config.Config, log logger.Logger, opts ...Option) *Concatenator {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	c := &Concatenator{
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run concatenates every matching file under the configured root into the
// configured output file and returns the run summary.
//
// The returned error is a *ConfigError when the configuration is unusable
// (including a missing root under the fail policy) and an *OutputError when
// the output cannot be locked, created or written. Unreadable source files
// are reported in the summary, never as an error.
func (c *Concatenator) Run() (*models.RunSummary, error) {
	if c.cfg == nil {
		return nil, &ConfigError{Field: "config", Message: "no configuration provided"}
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, &ConfigError{Field: "config", Message: "invalid configuration", Err: err}
	}

	policy, err := ParseDecodePolicy(c.cfg.InvalidBytes)
	if err != nil {
		return nil, &ConfigError{Field: "invalid_bytes", Message: "unknown policy", Err: err}
	}

	runID := c.runID
	if runID == "" {
		runID = uuid.New().String()
	}

	summary := &models.RunSummary{
		RunID:      runID,
		Root:       c.cfg.RootDir,
		Output:     c.cfg.OutputFile,
		Extensions: append([]string(nil), c.cfg.Extensions...),
		Files:      make([]string, 0),
		Skipped:    make([]models.SkippedFile, 0),
		StartedAt:  c.now(),
	}

	rootErr := fileutil.CheckRoot(c.cfg.RootDir)
	if rootErr != nil {
		if c.cfg.MissingRoot == config.MissingRootFail {
			return nil, &ConfigError{Field: "root_dir", Message: "root directory is not usable", Err: rootErr}
		}
		summary.RootMissing = true
		c.logger.LogWarn(fmt.Sprintf("Root %s is not usable (%v); writing an empty output", c.cfg.RootDir, rootErr))
		if c.onMissingRoot != nil {
			c.onMissingRoot(c.cfg.RootDir, rootErr)
		}
	}

	if err := c.writeOutput(summary, policy, rootErr == nil); err != nil {
		return nil, err
	}

	summary.Duration = c.now().Sub(summary.StartedAt)

	if c.cfg.SummaryFile != "" {
		if err := writeSummary(c.cfg.SummaryFile, summary); err != nil {
			// The output is complete; a missing summary is reported, not fatal
			c.logger.LogWarn(fmt.Sprintf("Failed to write run summary %s: %v", c.cfg.SummaryFile, err))
		}
	}

	c.logger.LogSummary(*summary)
	return summary, nil
}

// writeOutput owns the output file for the duration of the run: lock, create,
// stream every match, flush and close.
func (c *Concatenator) writeOutput(summary *models.RunSummary, policy DecodePolicy, rootUsable bool) (retErr error) {
	outPath := c.cfg.OutputFile

	if c.cfg.LockOutput {
		lock := filelock.NewFileLock(filelock.LockPathFor(outPath))
		if err := lock.Acquire(); err != nil {
			if errors.Is(err, filelock.ErrLocked) {
				err = ErrOutputInUse
			}
			return &OutputError{Path: outPath, Op: "lock", Err: err}
		}
		defer func() {
			if err := lock.Release(); err != nil {
				c.logger.LogWarn(fmt.Sprintf("Failed to release lock %s: %v", lock.Path(), err))
			}
		}()
	}

	f, err := os.Create(outPath)
	if err != nil {
		return &OutputError{Path: outPath, Op: "create", Err: err}
	}
	c.logger.LogDebug(fmt.Sprintf("Writing %s", outPath))

	w := bufio.NewWriter(f)
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = &OutputError{Path: outPath, Op: "close", Err: err}
		}
	}()

	if rootUsable {
		if err := c.walk(w, summary, policy); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return &OutputError{Path: outPath, Op: "write", Err: err}
	}
	return nil
}

// walk streams each match into w in traversal order.
func (c *Concatenator) walk(w *bufio.Writer, summary *models.RunSummary, policy DecodePolicy) error {
	opts := fileutil.WalkOptions{
		Extensions:   c.cfg.Extensions,
		ExcludePaths: []string{c.cfg.OutputFile},
	}

	c.logger.LogInfo(fmt.Sprintf("Scanning %s for %v", c.cfg.RootDir, c.cfg.Extensions))

	result, err := fileutil.Walk(c.cfg.RootDir, opts, func(m models.MatchedFile) error {
		data, err := os.ReadFile(m.Path)
		if err != nil {
			summary.Skipped = append(summary.Skipped, models.SkippedFile{
				RelPath: m.RelPath,
				Reason:  readFailureReason(err),
			})
			c.logger.LogWarn(fmt.Sprintf("Skipping %s: %v", m.RelPath, err))
			return nil
		}

		n, err := w.WriteString(FormatHeader(m.RelPath))
		summary.BytesWritten += int64(n)
		if err != nil {
			return &OutputError{Path: c.cfg.OutputFile, Op: "write", Err: err}
		}
		nb, err := w.Write(policy.Decode(data))
		summary.BytesWritten += int64(nb)
		if err != nil {
			return &OutputError{Path: c.cfg.OutputFile, Op: "write", Err: err}
		}

		summary.Files = append(summary.Files, m.RelPath)
		c.logger.LogDebug(fmt.Sprintf("Appended %s (%d bytes)", m.RelPath, len(data)))
		if c.onFile != nil {
			c.onFile(m.RelPath)
		}
		return nil
	})
	if err != nil {
		var oe *OutputError
		if errors.As(err, &oe) {
			return err
		}
		// The root vanished between the check and the walk
		summary.RootMissing = true
		c.logger.LogWarn(fmt.Sprintf("Root %s could not be walked: %v", c.cfg.RootDir, err))
		return nil
	}

	for _, werr := range result.Errors {
		c.logger.LogWarn(fmt.Sprintf("Walk error: %v", werr))
	}
	return nil
}

// readFailureReason returns a short, stable description of a read error.
func readFailureReason(err error) string {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}

// writeSummary writes the run summary as YAML, replacing any previous
// summary atomically.
func writeSummary(path string, summary *models.RunSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	return filelock.LockAndWrite(path, data)
}
