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
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/copywrite/pkg/index"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConcurrency bounds hashing and copying when the config does not
const DefaultConcurrency = 8

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
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

// 📚 Config represents the complete configuration
type Config struct {
	Recursive   bool                  `json:"recursive" yaml:"recursive"`
	Concurrency int                   `json:"concurrency" yaml:"concurrency"`
	Collision   index.CollisionPolicy `json:"collision" yaml:"collision"`
	Ignore      []string              `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Executable  []string              `json:"executable,omitempty" yaml:"executable,omitempty"`
	AssumeYes   bool                  `json:"assume_yes,omitempty" yaml:"assume_yes,omitempty"`
	ShowOrphans bool                  `json:"show_orphans,omitempty" yaml:"show_orphans,omitempty"`

	location string
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Recursive:   true,
		Concurrency: DefaultConcurrency,
		Collision:   index.CollisionLastWins,
	}
}

// 🔍 Validate fills empty values with defaults and rejects bad ones
func (cfg *Config) Validate() error {
	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	cfg.Collision = index.CollisionPolicy(strings.ToLower(strings.TrimSpace(string(cfg.Collision))))
	if cfg.Collision == "" {
		cfg.Collision = index.CollisionLastWins
	}
	if !cfg.Collision.Valid() {
		return errors.Errorf("collision must be %q or %q, got %q", index.CollisionLastWins, index.CollisionReject, cfg.Collision)
	}

	for _, p := range cfg.Ignore {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid ignore pattern %q", p)
		}
	}
	for _, p := range cfg.Executable {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid executable pattern %q", p)
		}
	}

	return nil
}

// IndexOptions returns the options used to index both trees
func (cfg *Config) IndexOptions() index.Options {
	return index.Options{
		Recursive: cfg.Recursive,
		Collision: cfg.Collision,
		Ignore:    cfg.Ignore,
	}
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("recursive=%t concurrency=%d collision=%s ignore=%d executable=%d",
		cfg.Recursive, cfg.Concurrency, cfg.Collision, len(cfg.Ignore), len(cfg.Executable))
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
