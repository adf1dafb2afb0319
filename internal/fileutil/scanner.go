package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/codecat/internal/models"
)

var (
	// ErrRootNotFound is returned when the walk root does not exist
	ErrRootNotFound = errors.New("root directory does not exist")
	// ErrRootNotDirectory is returned when the walk root exists but is not a directory
	ErrRootNotDirectory = errors.New("root path is not a directory")
)

// WalkOptions configures the traversal
type WalkOptions struct {
	// Extensions is the inclusion filter (e.g., ".py", ".ts"), matched as case-sensitive suffixes
	Extensions []string
	// ExcludePaths lists files that are never reported, compared as absolute paths
	ExcludePaths []string
}

// WalkResult contains the outcome of a walk
type WalkResult struct {
	// Matched is the number of files handed to the visit callback
	Matched int
	// Errors contains non-fatal errors encountered below the root
	Errors []error
}

// VisitFunc receives each matched file in traversal order
type VisitFunc func(models.MatchedFile) error

// MatchesExtension reports whether name ends with any of the extensions
func MatchesExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Walk traverses root and calls visit for every regular file whose name
// matches one of opts.Extensions
func Walk(root string, opts WalkOptions, visit VisitFunc) (*WalkResult, error) {
	walkRoot, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	excludeMap := make(map[string]bool, len(opts.ExcludePaths))
	for _, p := range opts.ExcludePaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve excluded path %s: %w", p, err)
		}
		excludeMap[abs] = true
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			excludeMap[resolved] = true
		}
	}

	result := &WalkResult{
		Errors: make([]error, 0),
	}

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == walkRoot {
				return fmt.Errorf("failed to read root directory: %w", err)
			}
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		// Directories are only recursed into; links, devices and sockets are ignored
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if !MatchesExtension(d.Name(), opts.Extensions) {
			return nil
		}

		if len(excludeMap) > 0 {
			abs, err := filepath.Abs(path)
			if err == nil && excludeMap[abs] {
				return nil
			}
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to relativize %s: %w", path, err))
			return nil
		}

		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}

		result.Matched++
		return visit(models.MatchedFile{
			RelPath: filepath.ToSlash(rel),
			Path:    path,
			Size:    size,
		})
	})
	if err != nil {
		return result, err
	}

	return result, nil
}

// ScanMatches walks root and returns every match in traversal order
func ScanMatches(root string, opts WalkOptions) ([]models.MatchedFile, *WalkResult, error) {
	matches := make([]models.MatchedFile, 0)
	result, err := Walk(root, opts, func(m models.MatchedFile) error {
		matches = append(matches, m)
		return nil
	})
	if err != nil {
		return nil, result, err
	}
	return matches, result, nil
}

// CheckRoot reports whether root is an existing directory, returning
// ErrRootNotFound or ErrRootNotDirectory (wrapped) when it is not
func CheckRoot(root string) error {
	_, err := resolveRoot(root)
	return err
}

// resolveRoot validates root and returns the path to hand to WalkDir.
// A root that is a symlink to a directory is resolved so its contents are walked.
func resolveRoot(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return "", fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}

	linfo, err := os.Lstat(root)
	if err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return "", fmt.Errorf("failed to resolve root symlink: %w", err)
		}
		return resolved, nil
	}

	return root, nil
}
