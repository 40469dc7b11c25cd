package initcmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/stubgen/cmd/stubgen/internal/common"
	"github.com/broady/stubgen/internal/config"
)

func TestRun(t *testing.T) {
	p := filepath.Join(t.TempDir(), "stubgen.toml")
	g := &common.Globals{}

	require.NoError(t, (&Cmd{Path: p}).Run(g))
	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	require.NoError(t, os.WriteFile(p, []byte("# mine\n"), 0o644))
	assert.Error(t, (&Cmd{Path: p}).Run(g))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))

	require.NoError(t, (&Cmd{Path: p, Force: true}).Run(g))
	data, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "provider = ")
}
