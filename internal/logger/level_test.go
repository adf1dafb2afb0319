package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/codecat/internal/models"
)

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	levels := []string{"trace", "debug", "info", "warn", "error"}

	for ci, configured := range levels {
		for mi, message := range levels {
			name := configured + " vs " + message
			shouldAppear := mi >= ci

			t.Run(name, func(t *testing.T) {
				buf := &bytes.Buffer{}
				logger := NewConsoleLogger(buf, configured)
				text := message + " msg"

				switch message {
				case "trace":
					logger.LogTrace(text)
				case "debug":
					logger.LogDebug(text)
				case "info":
					logger.LogInfo(text)
				case "warn":
					logger.LogWarn(text)
				case "error":
					logger.LogError(text)
				}

				contains := strings.Contains(buf.String(), text)
				if shouldAppear && !contains {
					t.Errorf("Expected message %q to appear at level %s. Output: %q", text, configured, buf.String())
				}
				if !shouldAppear && contains {
					t.Errorf("Expected message %q NOT to appear at level %s. Output: %q", text, configured, buf.String())
				}
			})
		}
	}
}

// TestSummaryRespectsLogLevel verifies LogSummary is an INFO-level message
func TestSummaryRespectsLogLevel(t *testing.T) {
	tests := []struct {
		logLevel     string
		shouldAppear bool
	}{
		{logLevel: "trace", shouldAppear: true},
		{logLevel: "debug", shouldAppear: true},
		{logLevel: "info", shouldAppear: true},
		{logLevel: "warn", shouldAppear: false},
		{logLevel: "error", shouldAppear: false},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.logLevel)
			logger.LogSummary(models.RunSummary{Output: "all_code.txt"})

			contains := strings.Contains(buf.String(), "Run Summary")
			if contains != tt.shouldAppear {
				t.Errorf("summary visible = %v at level %s, want %v", contains, tt.logLevel, tt.shouldAppear)
			}
		})
	}
}

// TestLogLevelEdgeCases verifies normalization of unusual level strings
func TestLogLevelEdgeCases(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "info"},
		{"INFO", "info"},
		{"  Debug ", "debug"},
		{"WARN", "warn"},
		{"verbose", "info"},
		{"warning", "info"},
	}

	for _, tt := range tests {
		if got := normalizeLogLevel(tt.input); got != tt.want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestFileLoggerWithLogLevel verifies FileLogger respects log level
func TestFileLoggerWithLogLevel(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewFileLoggerWithLevel(tmpDir, "warn", "")
	if err != nil {
		t.Fatalf("NewFileLoggerWithLevel failed: %v", err)
	}

	logger.LogDebug("debug message")
	logger.LogInfo("info message")
	logger.LogWarn("warn message")
	logger.LogError("error message")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(tmpDir, "latest.log"))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	output := string(content)

	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("debug/info messages should be filtered at warn level:\n%s", output)
	}
	if !strings.Contains(output, "[WARN] warn message") {
		t.Errorf("warn message missing:\n%s", output)
	}
	if !strings.Contains(output, "[ERROR] error message") {
		t.Errorf("error message missing:\n%s", output)
	}
}
