package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Desmoss900/srt2dvbsub/internal/render"
	"github.com/Desmoss900/srt2dvbsub/internal/snapshot"
)

const (
	// AppName is the application name used for the config directory.
	AppName = "srt2dvbsub"
	// ConfigFile is the name of the TOML configuration file.
	ConfigFile = "config.toml"
)

// Config carries per-user defaults for the snapshot pipeline. Command-line
// flags and env vars override anything set here.
type Config struct {
	// OutputDir is the default snapshot output directory.
	OutputDir string `toml:"output_dir"`
	// Geometry is the default raster size as WxH.
	Geometry string `toml:"geometry"`
	// Foreground and Background are #RRGGBB color specs.
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	// Track is the default DVB track identifier embedded in filenames.
	Track int `toml:"track"`
}

// DefaultConfig returns the built-in defaults used when no config file
// exists or a key is absent.
func DefaultConfig() Config {
	return Config{
		OutputDir:  snapshot.DefaultDir,
		Geometry:   render.DefaultGeometry,
		Foreground: render.DefaultForeground,
		Background: render.DefaultBackground,
		Track:      0,
	}
}

// Path returns the config file location under the platform config directory.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, ConfigFile), nil
}

// Load reads the config file at path, layering it over the defaults. A
// missing file is not an error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
