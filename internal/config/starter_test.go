package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStarter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStarter(&buf))
	assert.Contains(t, buf.String(), "# stubgen configuration.")

	var decoded map[string]any
	_, err := toml.Decode(buf.String(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, "command", decoded["provider"])

	dir := t.TempDir()
	p := filepath.Join(dir, "stubgen.toml")
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o644))

	fromFile, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, fromFile.Validate())

	t.Chdir(t.TempDir())
	defaults, err := Load("")
	require.NoError(t, err)

	fromFile.File = ""
	assert.Equal(t, defaults, fromFile)
}
