package concat

// FormatHeader returns the header block written before a file's contents:
// two blank lines, "===== <relPath> =====", and one blank line.
func FormatHeader(relPath string) string {
	return "\n\n===== " + relPath + " =====\n\n"
}
