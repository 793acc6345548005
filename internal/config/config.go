// Package config loads the gradix application settings.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/gradix/internal/random"
	"github.com/alexisbeaulieu97/gradix/internal/render"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "GRADIX_CONFIG"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the full application configuration document.
type Config struct {
	Log    LogConfig      `yaml:"log"`
	Store  StoreConfig    `yaml:"store"`
	Server ServerConfig   `yaml:"server"`
	Render RenderConfig   `yaml:"render"`
	Random random.Options `yaml:"random"`
}

// LogConfig configures the zerolog output.
type LogConfig struct {
	Level         string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	HumanReadable bool   `yaml:"human_readable"`
}

// StoreConfig picks where saved gradients live. Path is a directory for the
// file backend and a database file for sqlite.
type StoreConfig struct {
	Backend string `yaml:"backend" validate:"required,oneof=memory file sqlite"`
	Path    string `yaml:"path" validate:"required_unless=Backend memory"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr     string `yaml:"addr" validate:"required,hostname_port"`
	BasePath string `yaml:"base_path" validate:"omitempty,base_path"`
}

// RenderConfig holds the default code output options.
type RenderConfig struct {
	ColorFormat      string `yaml:"color_format" validate:"omitempty,oneof=hex rgba"`
	IncludeLocations bool   `yaml:"include_locations"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", HumanReadable: true},
		Store:  StoreConfig{Backend: BackendFile, Path: DefaultStorePath()},
		Server: ServerConfig{Addr: "127.0.0.1:5000", BasePath: "/api"},
		Render: RenderConfig{ColorFormat: string(render.ColorHex)},
		Random: random.DefaultOptions(),
	}
}

// DefaultStorePath is the per-user directory for the file backend.
func DefaultStorePath() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "gradix")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".gradix")
	}
	return ".gradix"
}

// DefaultConfigPath is the config file read when neither --config nor
// GRADIX_CONFIG names one.
func DefaultConfigPath() string {
	return filepath.Join(DefaultStorePath(), "config.yaml")
}

// RenderOptions converts the render section into renderer options.
func (c Config) RenderOptions() render.Options {
	format, err := render.ParseColorFormat(c.Render.ColorFormat)
	if err != nil {
		format = render.ColorHex
	}
	return render.Options{ColorFormat: format, IncludeLocations: c.Render.IncludeLocations}
}

// ResolvePath picks the config file: an explicit flag wins over the
// environment. Empty means no file.
func ResolvePath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}
