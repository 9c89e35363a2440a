package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/galaxy/pkg/galaxy"
)

func TestDefaultParameters(t *testing.T) {
	p, err := Default().Parameters()
	require.NoError(t, err)

	want := galaxy.DefaultParameters()
	assert.Equal(t, want.Count, p.Count)
	assert.Equal(t, want.Branches, p.Branches)
	assert.Equal(t, want.InsideColor.Hex(), p.InsideColor.Hex())
	assert.Equal(t, want.OutsideColor.Hex(), p.OutsideColor.Hex())
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galaxy.toml")
	data := `
seed = 7

[galaxy]
branches = 5
inside_color = "#00ff00"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), f.Seed)
	assert.Equal(t, 5, f.Galaxy.Branches)
	assert.Equal(t, 100000, f.Galaxy.Count, "unset keys keep defaults")
	assert.Equal(t, 60, f.View.FPS)

	p, err := f.Parameters()
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.InsideColor.G)
}

func TestSaveLoadKeepsParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galaxy.toml")
	f := Default()
	f.Galaxy.Spin = -2.5
	f.Galaxy.OutsideColor = "#123456"
	require.NoError(t, f.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestParametersRejectsBadValues(t *testing.T) {
	f := Default()
	f.Galaxy.Branches = 0
	_, err := f.Parameters()
	assert.ErrorIs(t, err, galaxy.ErrInvalidParameter)

	f = Default()
	f.Galaxy.OutsideColor = "blue"
	_, err = f.Parameters()
	assert.ErrorIs(t, err, galaxy.ErrInvalidParameter)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[galaxy\ncount = "), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
