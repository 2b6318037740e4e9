// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// defaultServerURL matches the API server's default listen port.
const defaultServerURL = "http://localhost:5000"

// Config is the CLI state persisted between invocations.
type Config struct {
	ServerURL string `toml:"server_url"`
	// Session is the raw session cookie value of the signed-in user.
	Session string `toml:"session"`
}

// DefaultConfig returns a Config pointing at a local server with no session.
func DefaultConfig() *Config {
	return &Config{ServerURL: defaultServerURL}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/reelflix/config.toml or its platform equivalent.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "reelflix.toml"
	}
	return filepath.Join(dir, "reelflix", "config.toml")
}

/*
LoadConfig reads the TOML file at path.

Description: A missing file is not an error; the defaults are returned so the
first login can create it.
*/
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.ServerURL == "" {
		config.ServerURL = defaultServerURL
	}

	return config, nil
}

// SaveConfig writes config to path. The file holds a credential, so it is owner-only.
func SaveConfig(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
