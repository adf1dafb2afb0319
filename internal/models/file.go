package models

// MatchedFile is a file selected by the extension filter during traversal
type MatchedFile struct {
	RelPath string // Slash-separated path relative to the root
	Path    string // Path as produced by the walk (root joined with the entry)
	Size    int64  // Best-effort size from the directory entry
}

// SkippedFile is a matched file that could not be included in the output
type SkippedFile struct {
	RelPath string `yaml:"path"`
	Reason  string `yaml:"reason"`
}
