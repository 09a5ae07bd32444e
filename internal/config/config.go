// Package config loads user configuration for the seatplan CLI.
//
// Configuration lives in a TOML file (by default
// ~/.config/seatplan/config.toml):
//
//	[defaults]
//	class = "3A"
//	room = "T121"
//	layout = "Custom"
//	formats = ["pdf", "png"]
//
//	[tools]
//	pdftoppm = "/opt/homebrew/bin/pdftoppm"
//
//	[cache]
//	dir = "/tmp/seatplan-cache"
//
//	[[layouts]]
//	name = "Gym"
//	rows = 2
//	banks = 6
//	seats = 3
//	orientation = "landscape"
//
//	[[layouts]]
//	name = "Library"
//	pattern = "[2], [4, 4]"
//
// A missing file is not an error. After the file, a .env file in the working
// directory and SEATPLAN_* environment variables override individual values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	perrors "github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout"
)

// Environment variables.
const (
	EnvConfig   = "SEATPLAN_CONFIG"
	EnvPdftoppm = "SEATPLAN_PDFTOPPM"
	EnvCacheDir = "SEATPLAN_CACHE_DIR"
	EnvNoCache  = "SEATPLAN_NO_CACHE"
	EnvClass    = "SEATPLAN_CLASS"
	EnvRoom     = "SEATPLAN_ROOM"
)

// Config is the user configuration.
type Config struct {
	Defaults Defaults      `toml:"defaults"`
	Tools    Tools         `toml:"tools"`
	Cache    Cache         `toml:"cache"`
	Layouts  []LayoutEntry `toml:"layouts"`
}

// Defaults are used when a command does not set a value.
type Defaults struct {
	Class    string   `toml:"class"`
	Room     string   `toml:"room"`
	Layout   string   `toml:"layout"`
	Formats  []string `toml:"formats"`
	PNGScale float64  `toml:"png_scale"`
}

// Tools locates external programs.
type Tools struct {
	Pdftoppm string `toml:"pdftoppm"`
}

// Cache configures the crop cache.
type Cache struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// LayoutEntry is a named layout added to the registry. Either Pattern or
// Rows, Banks and Seats must be set.
type LayoutEntry struct {
	Name        string `toml:"name"`
	Rows        int    `toml:"rows"`
	Banks       int    `toml:"banks"`
	Seats       int    `toml:"seats"`
	Pattern     string `toml:"pattern"`
	Orientation string `toml:"orientation"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Class:    "class",
			Room:     "room",
			Formats:  []string{"pdf"},
			PNGScale: 2,
		},
	}
}

// Path returns the configuration file path: $SEATPLAN_CONFIG, or
// config.toml in the user config directory.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "seatplan", "config.toml"), nil
}

// Load reads the file at path over the defaults, then applies .env and
// environment overrides. An empty path uses [Path].
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "read .env")
	}

	if path == "" {
		p, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPdftoppm); v != "" {
		c.Tools.Pdftoppm = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvNoCache); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cache.Disabled = b
		}
	}
	if v := os.Getenv(EnvClass); v != "" {
		c.Defaults.Class = v
	}
	if v := os.Getenv(EnvRoom); v != "" {
		c.Defaults.Room = v
	}
}

// Config converts the entry into a layout configuration.
func (e LayoutEntry) Config() (layout.Config, error) {
	orient, err := layout.ParseOrientation(e.Orientation)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidLayout, err, "layout %q", e.Name)
	}
	if e.Pattern != "" {
		pattern, err := layout.ParsePattern(e.Pattern)
		if err != nil {
			return nil, fmt.Errorf("layout %q: %w", e.Name, err)
		}
		return layout.Irregular{Pattern: pattern, Orient: orient}, nil
	}
	return layout.Regular{Rows: e.Rows, Banks: e.Banks, Seats: e.Seats, Orient: orient}, nil
}

// Registry returns the built-in layouts followed by the configured ones.
// An entry named "Custom" replaces the default Custom layout.
func (c Config) Registry() (*layout.Registry, error) {
	reg := layout.NewRegistry()
	for _, e := range c.Layouts {
		cfg, err := e.Config()
		if err != nil {
			return nil, err
		}
		if err := reg.Add(e.Name, cfg); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
