package parser

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultLineReader reads a source file from disk and splits it into raw
// lines, stripping a trailing newline. Files are read in full and closed
// before parsing proceeds.
func DefaultLineReader(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the assembly source under the operator's control
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// DefaultPathResolver resolves an INCLUDE path relative to the directory
// of the file containing the INCLUDE directive.
func DefaultPathResolver(currentFile, includePath string) string {
	if filepath.IsAbs(includePath) {
		return includePath
	}
	return filepath.Join(filepath.Dir(currentFile), includePath)
}
