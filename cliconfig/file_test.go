package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestFileLoad(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `# a comment
prefix="CI_"
convert=upper

on-collision: warn
`)

	file := File{Path: path}
	require.True(t, file.Exists())
	require.NoError(t, file.Load())

	assert.Equal(t, map[string]string{
		"prefix":       "CI_",
		"convert":      "upper",
		"on-collision": "warn",
	}, file.Config)
}

func TestFileLoadQuotedValues(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `remove-prefix="MY_APP_" # with a trailing comment`)

	file := File{Path: path}
	require.NoError(t, file.Load())

	assert.Equal(t, "MY_APP_", file.Config["remove-prefix"])
}

func TestFileLoadBadLine(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "no separators here\n")

	file := File{Path: path}
	err := file.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config line 1")
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	file := File{Path: filepath.Join(t.TempDir(), "does-not-exist")}
	assert.False(t, file.Exists())
}
