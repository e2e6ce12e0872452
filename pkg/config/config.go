// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultBaseURL     = "http://localhost:8000"
	DefaultSessionPath = ".rxgrid.session.json"
	DefaultReplacement = "REDACTED"
	// DefaultMaxRows matches the number of rows the backend returns
	DefaultMaxRows = 100
)

// FileNames are the config files Discover looks for, in order
var FileNames = []string{".rxgrid.yaml", ".rxgrid.yml", ".rxgrid.json", ".rxgrid.hcl"}

// 🌐 ServerConfig locates the transform backend
type ServerConfig struct {
	BaseURL string
}

// 💾 SessionConfig locates the persisted session
type SessionConfig struct {
	Path string
}

// 🔧 TransformConfig holds the defaults for apply
type TransformConfig struct {
	Replacement    string
	NormalizePhone bool
	NormalizeDate  bool
}

// 🖥️ DisplayConfig tunes grid rendering
type DisplayConfig struct {
	MaxRows int
}

// 📚 Config represents the complete configuration
type Config struct {
	Server    ServerConfig
	Session   SessionConfig
	Transform TransformConfig
	Display   DisplayConfig

	location string
}

// Defaults returns the configuration used when nothing is configured
func Defaults() *Config {
	return &Config{
		Server:    ServerConfig{BaseURL: DefaultBaseURL},
		Session:   SessionConfig{Path: DefaultSessionPath},
		Transform: TransformConfig{Replacement: DefaultReplacement},
		Display:   DisplayConfig{MaxRows: DefaultMaxRows},
	}
}

// 🔍 Discover returns the first config file present in dir, or ""
func Discover(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// 🎯 Load builds the configuration from defaults, the file at path and the
// environment. An empty path falls back to Discover in the working directory
// and then to defaults alone.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		path = Discover(".")
	}

	cfg := Defaults()
	if path != "" {
		logger.Debug().Str("path", path).Msg("loading configuration")

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Errorf("reading config file: %w", err)
		}

		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}

		cfg, err = p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
		cfg.location = path
	} else {
		logger.Debug().Msg("no config file found, using defaults")
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and normalizes it in place
func (cfg *Config) Validate() error {
	cfg.Server.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Server.BaseURL), "/")
	if cfg.Server.BaseURL == "" {
		return errors.Errorf("server.base_url is required")
	}
	u, err := url.Parse(cfg.Server.BaseURL)
	if err != nil {
		return errors.Errorf("server.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("server.base_url must be an http or https url, got %q", cfg.Server.BaseURL)
	}
	if u.Host == "" {
		return errors.Errorf("server.base_url has no host: %q", cfg.Server.BaseURL)
	}

	if strings.TrimSpace(cfg.Session.Path) == "" {
		return errors.Errorf("session.path is required")
	}
	cfg.Session.Path = filepath.Clean(cfg.Session.Path)

	if cfg.Display.MaxRows <= 0 {
		return errors.Errorf("display.max_rows must be positive, got %d", cfg.Display.MaxRows)
	}

	return nil
}

// Location is the file the configuration was read from, or "" for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	src := cfg.location
	if src == "" {
		src = "defaults"
	}
	return fmt.Sprintf("%s (session %s, from %s)", cfg.Server.BaseURL, cfg.Session.Path, src)
}
