// Package osutil provides small helpers for dealing with the filesystem and
// OS quirks.
package osutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns whether or not a file exists on the filesystem. We
// consider any error returned by os.Stat to indicate that the file doesn't
// exist. We could be specific and use os.IsNotExist(err), but most other
// errors also indicate that the file isn't there (or isn't available) so we'll
// just catch them all.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// NormalizeFilePath expands environment variables and a leading "~/" in path,
// and makes the result absolute.
func NormalizeFilePath(path string) (string, error) {
	expanded := os.ExpandEnv(path)

	if strings.HasPrefix(expanded, "~/") {
		home, err := UserHomeDir()
		if err != nil {
			return "", err
		}
		expanded = filepath.Join(home, expanded[2:])
	}

	return filepath.Abs(expanded)
}
