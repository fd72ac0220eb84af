package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// CurrentVersion is written to every saved file
const CurrentVersion = 1

// Units selects how dimensions are shown and typed
type Units string

const (
	UnitsMM     Units = "mm"
	UnitsInches Units = "inches"
)

// MMPerInch converts between the two unit systems
const MMPerInch = 25.4

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Editor  EditorSettings `toml:"editor"`
	View    ViewSettings   `toml:"view"`
	Log     LogSettings    `toml:"log"`
}

// EditorSettings controls sketching behaviour
type EditorSettings struct {
	TooltipDelayMS     int     `toml:"tooltip_delay_ms"`
	SnapToGrid         bool    `toml:"snap_to_grid"`
	GridSpacing        float64 `toml:"grid_spacing"`
	DigitsAfterDecimal int     `toml:"digits_after_decimal"`
	ChordTolerance     float64 `toml:"chord_tolerance"`
	Units              Units   `toml:"units"`
	AutoConstrain      bool    `toml:"auto_constrain"`
	HitRadius          float64 `toml:"hit_radius"`
	TangentArcRadius   float64 `toml:"tangent_arc_radius"`
}

// ViewSettings controls what is shown
type ViewSettings struct {
	Scale          float64 `toml:"scale"`
	ShowToolbar    bool    `toml:"show_toolbar"`
	ShowGrid       bool    `toml:"show_grid"`
	ShowTextWindow bool    `toml:"show_text_window"`
}

// LogSettings controls the log file
type LogSettings struct {
	File string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service bound to path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultPath is sketchedit/config.toml under the user config directory
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "sketchedit", "config.toml")
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration, or the defaults when there is no file yet
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing
// from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	config.Version = CurrentVersion
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.Editor.TooltipDelayMS < 0 {
		c.Editor.TooltipDelayMS = d.Editor.TooltipDelayMS
	}
	if c.Editor.GridSpacing <= 0 {
		c.Editor.GridSpacing = d.Editor.GridSpacing
	}
	if c.Editor.ChordTolerance <= 0 {
		c.Editor.ChordTolerance = d.Editor.ChordTolerance
	}
	if c.Editor.HitRadius <= 0 {
		c.Editor.HitRadius = d.Editor.HitRadius
	}
	if c.Editor.TangentArcRadius <= 0 {
		c.Editor.TangentArcRadius = d.Editor.TangentArcRadius
	}
	c.Editor.DigitsAfterDecimal = min(max(c.Editor.DigitsAfterDecimal, 0), 8)
	if c.Editor.Units != UnitsMM && c.Editor.Units != UnitsInches {
		c.Editor.Units = d.Editor.Units
	}
	if c.View.Scale <= 0 {
		c.View.Scale = d.View.Scale
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Editor: EditorSettings{
			TooltipDelayMS:     1000,
			GridSpacing:        5,
			DigitsAfterDecimal: 2,
			ChordTolerance:     0.5,
			Units:              UnitsMM,
			AutoConstrain:      true,
			HitRadius:          1.5,
			TangentArcRadius:   10,
		},
		View: ViewSettings{
			Scale:          1,
			ShowToolbar:    true,
			ShowTextWindow: true,
		},
		Log: LogSettings{
			File: "sketchedit.log",
		},
	}
}

// ToDisplay converts a length in millimetres to the configured units
func (c *Config) ToDisplay(mm float64) float64 {
	if c.Editor.Units == UnitsInches {
		return mm / MMPerInch
	}
	return mm
}

// FromDisplay converts a length typed in the configured units to millimetres
func (c *Config) FromDisplay(v float64) float64 {
	if c.Editor.Units == UnitsInches {
		return v * MMPerInch
	}
	return v
}

// FormatLength renders a length with the configured precision
func (c *Config) FormatLength(mm float64) string {
	return fmt.Sprintf("%.*f", c.Editor.DigitsAfterDecimal, c.ToDisplay(mm))
}
