package models

import "time"

// RunSummary describes the outcome of a single concatenation run
type RunSummary struct {
	RunID        string        `yaml:"run_id"`
	Root         string        `yaml:"root"`
	Output       string        `yaml:"output"`
	Extensions   []string      `yaml:"extensions"`
	Files        []string      `yaml:"files"`   // Relative paths in output order
	Skipped      []SkippedFile `yaml:"skipped"` // Matched files that could not be read
	BytesWritten int64         `yaml:"bytes_written"`
	RootMissing  bool          `yaml:"root_missing"`
	StartedAt    time.Time     `yaml:"started_at"`
	Duration     time.Duration `yaml:"duration"`
}

// Included returns the number of files written to the output
func (s *RunSummary) Included() int {
	return len(s.Files)
}

// HasSkipped reports whether any matched file was left out of the output
func (s *RunSummary) HasSkipped() bool {
	return len(s.Skipped) > 0
}

// SkippedPaths returns the relative paths of skipped files in traversal order
func (s *RunSummary) SkippedPaths() []string {
	paths := make([]string, 0, len(s.Skipped))
	for _, sk := range s.Skipped {
		paths = append(paths, sk.RelPath)
	}
	return paths
}
