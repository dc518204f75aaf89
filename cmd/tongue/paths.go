package main

import (
	"fmt"
	"os"

	"tongue/internal/diagfmt"
	"tongue/internal/driver"
	"tongue/internal/source"
)

// isDirTarget reports whether target names a directory. Stdin ("-") is
// always a single source.
func isDirTarget(target string) (bool, error) {
	if target == driver.StdinTarget {
		return false, nil
	}
	info, err := os.Stat(target)
	if err != nil {
		return false, fmt.Errorf("failed to stat path: %w", err)
	}
	return info.IsDir(), nil
}

// displayPath formats a result path for headers and JSON keys. Files that
// failed to load have no source and keep their raw path.
func displayPath(set *source.Set, path string, src *source.Source, st settings) string {
	if src == nil {
		return path
	}
	return diagfmt.FormatPath(src, set, st.pathMode)
}
