package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "as", cfg.Toolchain.Assembler)
	assert.Equal(t, "ld", cfg.Toolchain.Linker)
	assert.Equal(t, "output", cfg.Toolchain.Output)
	assert.EqualValues(t, 0, cfg.Sim.MaxSteps)

	assert.Equal(t, "output.s", cfg.AsmFile())
	assert.Equal(t, "output.o", cfg.ObjFile())
	assert.Equal(t, "output", cfg.BinFile())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quantum.toml")
	src := `
[toolchain]
assembler = "arm64-as"
output = "prog"

[sim]
max_steps = 1000
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "arm64-as", cfg.Toolchain.Assembler)
	assert.Equal(t, "ld", cfg.Toolchain.Linker, "missing values keep defaults")
	assert.Equal(t, "prog", cfg.Toolchain.Output)
	assert.EqualValues(t, 1000, cfg.Sim.MaxSteps)

	assert.Equal(t, "prog.s", cfg.AsmFile())
	assert.Equal(t, "prog.o", cfg.ObjFile())
	assert.Equal(t, "prog", cfg.BinFile())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadEmptyOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quantum.toml")
	require.NoError(t, os.WriteFile(path, []byte("[toolchain]\noutput = \"\"\n"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toolchain.output")
}
