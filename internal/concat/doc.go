// Package concat writes every matching source file under a root directory
// into a single output file.
//
// Each included file contributes one block:
//
//	"\n\n===== <relative path> =====\n\n" + <decoded contents>
//
// Files are written in traversal order (depth-first, lexical). A file that
// cannot be read is skipped with a warning and never leaves a partial header
// behind. Failing to create or write the output is fatal.
package concat
