// Package config loads FocusRune settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "focusrune.yaml"

// Config holds every tunable of the server, desktop app and CLI.
type Config struct {
	Port          string `yaml:"port" mapstructure:"port"`
	DatabaseURL   string `yaml:"database_url" mapstructure:"database_url"`
	APIBase       string `yaml:"api_base" mapstructure:"api_base"`
	WasmDir       string `yaml:"wasm_dir" mapstructure:"wasm_dir"`
	HistoryLimit  int    `yaml:"history_limit" mapstructure:"history_limit"`
	StreamBuffer  int    `yaml:"stream_buffer" mapstructure:"stream_buffer"`
	DarkMode      bool   `yaml:"dark_mode" mapstructure:"dark_mode"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:          "8080",
		APIBase:       "http://localhost:8080/",
		WasmDir:       "./web",
		StreamBuffer:  64,
		DarkMode:      true,
	}
}

// envs lists the variables consulted for each key, first match wins.
var envs = map[string][]string{
	"port":          {"FOCUSRUNE_PORT", "PORT"},
	"database_url":  {"FOCUSRUNE_DATABASE_URL", "DATABASE_URL"},
	"api_base":      {"FOCUSRUNE_API_BASE", "API_BASE"},
	"wasm_dir":      {"FOCUSRUNE_WASM_DIR", "WASM_DIR"},
	"history_limit": {"FOCUSRUNE_HISTORY_LIMIT"},
	"stream_buffer": {"FOCUSRUNE_STREAM_BUFFER"},
	"dark_mode":     {"FOCUSRUNE_DARK_MODE"},
}

// Load resolves the configuration. An empty path falls back to DefaultFile
// when it exists; an explicit path that cannot be read is an error.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("port", def.Port)
	v.SetDefault("database_url", def.DatabaseURL)
	v.SetDefault("api_base", def.APIBase)
	v.SetDefault("wasm_dir", def.WasmDir)
	v.SetDefault("history_limit", def.HistoryLimit)
	v.SetDefault("stream_buffer", def.StreamBuffer)
	v.SetDefault("dark_mode", def.DarkMode)
	for key, names := range envs {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port is empty")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: history_limit %d is negative", c.HistoryLimit)
	}
	if c.StreamBuffer < 1 {
		return fmt.Errorf("config: stream_buffer %d must be at least 1", c.StreamBuffer)
	}
	return nil
}
