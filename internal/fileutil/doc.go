// Package fileutil provides the directory traversal and extension filtering
// used by codecat.
//
// # Traversal
//
// Walk visits every directory under the root depth-first in lexical order
// (the order of filepath.WalkDir). Nothing is pruned: hidden directories,
// vendor trees and build output are all descended into. Symbolic links are
// not followed, except when the root itself is a link to a directory.
//
// Matches are streamed to a visit callback one at a time:
//
//	result, err := fileutil.Walk(root, fileutil.WalkOptions{
//	    Extensions: []string{".py", ".js"},
//	}, func(m models.MatchedFile) error {
//	    fmt.Println(m.RelPath)
//	    return nil
//	})
//
// ScanMatches collects the same matches into a slice when the caller needs
// the whole list up front (the list command does).
//
// # Extension Matching
//
// MatchesExtension is a true, case-sensitive string suffix check: "foo.cpp"
// matches ".cpp", while "foo.xcpp" and "Foo.CPP" do not.
//
// # Errors
//
// A missing root yields ErrRootNotFound and a root that is not a directory
// yields ErrRootNotDirectory, so callers can apply their own policy. Errors
// below the root (an unreadable subdirectory) are non-fatal and collected in
// WalkResult.Errors while the walk continues. An error returned by the visit
// callback stops the walk and is returned unchanged.
package fileutil
