package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/codecat/internal/models"
)

// FileLogger logs run events to a timestamped file in a log directory and
// maintains a latest.log symlink pointing to the most recent run.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger in logDir with the "info" level.
func NewFileLogger(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithLevel(logDir, "info", "")
}

// NewFileLoggerWithLevel creates a FileLogger with a custom log level.
// runID, when non-empty, is recorded in the log header.
func NewFileLoggerWithLevel(logDir string, logLevel string, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Timestamped filename: run-YYYYMMDD-HHMMSS.log
	ts := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", ts))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")

	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}

	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
		mu:       sync.Mutex{},
	}

	logger.writeRunLog("=== codecat Run Log ===\n")
	if runID != "" {
		logger.writeRunLog(fmt.Sprintf("Run ID: %s\n", runID))
	}
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunFile returns the path of the log file for this run.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	formatted := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message)
	fl.writeRunLog(formatted)
}

// LogSummary logs the run summary with the full list of included and
// skipped files at INFO level.
func (fl *FileLogger) LogSummary(summary models.RunSummary) {
	if !fl.shouldLog("info") {
		return
	}

	var b strings.Builder
	b.WriteString("\n=== Run Summary ===\n")
	if summary.RunID != "" {
		b.WriteString(fmt.Sprintf("Run ID: %s\n", summary.RunID))
	}
	b.WriteString(fmt.Sprintf("Root: %s\n", summary.Root))
	b.WriteString(fmt.Sprintf("Output: %s\n", summary.Output))
	b.WriteString(fmt.Sprintf("Extensions: %s\n", strings.Join(summary.Extensions, " ")))
	if summary.RootMissing {
		b.WriteString("Root missing: true\n")
	}
	b.WriteString(fmt.Sprintf("Included: %d\n", summary.Included()))
	b.WriteString(fmt.Sprintf("Skipped: %d\n", len(summary.Skipped)))
	b.WriteString(fmt.Sprintf("Bytes written: %d\n", summary.BytesWritten))
	b.WriteString(fmt.Sprintf("Duration: %s\n", formatDuration(summary.Duration)))

	if len(summary.Files) > 0 {
		b.WriteString("\nIncluded files:\n")
		for _, f := range summary.Files {
			b.WriteString(fmt.Sprintf("  %s\n", f))
		}
	}

	if summary.HasSkipped() {
		b.WriteString("\nSkipped files:\n")
		for _, sk := range summary.Skipped {
			b.WriteString(fmt.Sprintf("  %s: %s\n", sk.RelPath, sk.Reason))
		}
	}

	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return
	}

	fl.runLog.WriteString(message)
}
