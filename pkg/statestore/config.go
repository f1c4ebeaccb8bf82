// Copyright 2024-2025 CardinalHQ, Inc
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

package statestore

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/cardinalhq/statecache/internal/dlogger"
)

const (
	BackendBadger = "badger"
	BackendPebble = "pebble"
	BackendMemory = "memory"
)

const (
	defaultName      = "state"
	defaultCacheSize = 100_000
)

type Config struct {
	Backend   string       `mapstructure:"backend" yaml:"backend"`
	Directory string       `mapstructure:"directory" yaml:"directory"`
	Name      string       `mapstructure:"name" yaml:"name"`
	CacheSize int          `mapstructure:"cache_size" yaml:"cache_size"`
	LogLevel  string       `mapstructure:"log_level" yaml:"log_level"`
	Badger    BadgerConfig `mapstructure:"badger" yaml:"badger"`
	Pebble    PebbleConfig `mapstructure:"pebble" yaml:"pebble"`
}

type BadgerConfig struct {
	InMemory   bool `mapstructure:"in_memory" yaml:"in_memory"`
	SyncWrites bool `mapstructure:"sync_writes" yaml:"sync_writes"`
}

type PebbleConfig struct {
	DisableWAL bool `mapstructure:"disable_wal" yaml:"disable_wal"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Backend:   BackendBadger,
		Directory: "data",
		Name:      defaultName,
		CacheSize: defaultCacheSize,
		LogLevel:  dlogger.LogLevelInfo,
	}
}

// LoadConfig reads a YAML file over the defaults.  Unknown fields are an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := cfg.Load(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ParseConfig(b []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := cfg.Parse(b); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a YAML file over c.  Fields the file leaves out keep their
// current values.
func (c *Config) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.Parse(b)
}

// Parse decodes YAML over c.  Fields b leaves out keep their current values.
func (c *Config) Parse(b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs error

	switch c.Backend {
	case BackendBadger, BackendPebble:
		if c.Directory == "" && !(c.Backend == BackendBadger && c.Badger.InMemory) {
			errs = multierr.Append(errs, fmt.Errorf("directory is required for the %s backend", c.Backend))
		}
	case BackendMemory:
	default:
		errs = multierr.Append(errs, fmt.Errorf("backend must be one of %s, %s or %s, got %q",
			BackendBadger, BackendPebble, BackendMemory, c.Backend))
	}
	if c.Name == "" {
		errs = multierr.Append(errs, errors.New("name is required"))
	}
	if c.CacheSize < 0 {
		errs = multierr.Append(errs, errors.New("cache_size must be >= 0"))
	}
	if _, err := dlogger.ParseLevel(c.LogLevel); err != nil {
		errs = multierr.Append(errs, err)
	}

	return errs
}
