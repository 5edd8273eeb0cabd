// Package config loads casework settings from a TOML file.
//
// Every section is optional. Keys missing from the file keep their default
// values, so an empty file and no file at all behave the same.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/chazu/casework/pkg/kernel/sdfx"
	"github.com/chazu/casework/pkg/layout"
	"github.com/chazu/casework/pkg/tessellate"
	"github.com/chazu/casework/pkg/workspace"
)

// appName is the directory name under the user config dir.
const appName = "casework"

// FileName is the config file name inside the casework config directory.
const FileName = "config.toml"

// Config is the full configuration.
type Config struct {
	Layout    layout.Params `toml:"layout"`
	Render    Render        `toml:"render"`
	Workspace Workspace     `toml:"workspace"`
	Server    Server        `toml:"server"`
}

// Render controls tessellation.
type Render struct {
	Enabled   bool    `toml:"enabled"`    // produce meshes at all
	Scale     float64 `toml:"scale"`      // scene units per inch
	MeshCells int     `toml:"mesh_cells"` // marching cubes resolution
	Workers   int     `toml:"workers"`    // parallel meshing, 0 means GOMAXPROCS
}

// Workspace controls request sequencing.
type Workspace struct {
	Delay Duration `toml:"delay"` // pause before a submitted layout runs
}

// Server controls the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration that reads TOML strings such as "500ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: layout.DefaultParams(),
		Render: Render{
			Enabled:   true,
			Scale:     tessellate.DefaultScale,
			MeshCells: sdfx.DefaultMeshCells,
		},
		Workspace: Workspace{Delay: Duration{workspace.DefaultDelay}},
		Server:    Server{Addr: ":8080"},
	}
}

// Validate rejects settings no component could run with.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if !(c.Render.Scale > 0) {
		return fmt.Errorf("render: scale must be positive, got %g", c.Render.Scale)
	}
	if c.Render.MeshCells < 8 {
		return fmt.Errorf("render: mesh_cells must be at least 8, got %d", c.Render.MeshCells)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("render: workers must not be negative, got %d", c.Render.Workers)
	}
	if c.Workspace.Delay.Duration < 0 {
		return fmt.Errorf("workspace: delay must not be negative, got %s", c.Workspace.Delay)
	}
	if c.Server.Addr == "" {
		return errors.New("server: addr must not be empty")
	}
	return nil
}

// Decode reads TOML from data on top of the defaults and validates the
// result. Unknown keys are an error so typos do not go unnoticed.
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Load reads the file at path. An empty path means DefaultPath; a missing
// file at the default path yields the defaults, while a missing file that
// was asked for explicitly is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Decode(string(data))
}

// DefaultPath returns $XDG_CONFIG_HOME/casework/config.toml, falling back to
// ~/.config/casework/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, FileName), nil
}
