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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes on top of Defaults
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// fileConfig is the on-disk schema shared by every format. Pointers tell an
// absent setting apart from a zero one.
type fileConfig struct {
	Server    *serverSection    `json:"server" yaml:"server" hcl:"server,block"`
	Session   *sessionSection   `json:"session" yaml:"session" hcl:"session,block"`
	Transform *transformSection `json:"transform" yaml:"transform" hcl:"transform,block"`
	Display   *displaySection   `json:"display" yaml:"display" hcl:"display,block"`
}

type serverSection struct {
	BaseURL *string `json:"base_url" yaml:"base_url" hcl:"base_url,optional"`
}

type sessionSection struct {
	Path *string `json:"path" yaml:"path" hcl:"path,optional"`
}

type transformSection struct {
	Replacement    *string `json:"replacement" yaml:"replacement" hcl:"replacement,optional"`
	NormalizePhone *bool   `json:"normalize_phone" yaml:"normalize_phone" hcl:"normalize_phone,optional"`
	NormalizeDate  *bool   `json:"normalize_date" yaml:"normalize_date" hcl:"normalize_date,optional"`
}

type displaySection struct {
	MaxRows *int `json:"max_rows" yaml:"max_rows" hcl:"max_rows,optional"`
}

// toConfig lays the settings present in the file over Defaults
func (fc *fileConfig) toConfig() *Config {
	cfg := Defaults()
	if s := fc.Server; s != nil {
		setIf(&cfg.Server.BaseURL, s.BaseURL)
	}
	if s := fc.Session; s != nil {
		setIf(&cfg.Session.Path, s.Path)
	}
	if s := fc.Transform; s != nil {
		setIf(&cfg.Transform.Replacement, s.Replacement)
		setIf(&cfg.Transform.NormalizePhone, s.NormalizePhone)
		setIf(&cfg.Transform.NormalizeDate, s.NormalizeDate)
	}
	if s := fc.Display; s != nil {
		setIf(&cfg.Display.MaxRows, s.MaxRows)
	}
	return cfg
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
	Register(&JSONParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return fc.toConfig(), nil
}

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".json")
}

func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var fc fileConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fc); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return fc.toConfig(), nil
}
