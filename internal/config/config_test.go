package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigServiceAt(filepath.Join(t.TempDir(), "nope", "config.toml"))
	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketchedit", "config.toml")
	cs := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.Editor.Units = UnitsInches
	cfg.Editor.GridSpacing = 2.5
	cfg.View.ShowGrid = true
	require.NoError(t, cs.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[editor]")

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[view]\nshow_grid = true\n"), 0644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)
	assert.True(t, cfg.View.ShowGrid)
	assert.Equal(t, 1000, cfg.Editor.TooltipDelayMS)
	assert.Equal(t, UnitsMM, cfg.Editor.Units)
}

func TestLoadNormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[editor]\ngrid_spacing = -1\ndigits_after_decimal = 20\nunits = \"furlongs\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Editor.GridSpacing)
	assert.Equal(t, 8, cfg.Editor.DigitsAfterDecimal)
	assert.Equal(t, UnitsMM, cfg.Editor.Units)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor\n"), 0644))
	_, err := NewConfigServiceAt(path).Load()
	assert.Error(t, err)
}

func TestUnitConversion(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "25.40", cfg.FormatLength(25.4))

	cfg.Editor.Units = UnitsInches
	assert.Equal(t, "1.00", cfg.FormatLength(25.4))
	assert.InDelta(t, 50.8, cfg.FromDisplay(2), 1e-9)
}
