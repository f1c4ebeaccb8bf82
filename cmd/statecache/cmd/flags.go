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

package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/statecache/pkg/statestore"
)

type params struct {
	root struct {
		configPath string
		backend    string
		directory  string
		cacheSize  int
		logLevel   string
		hex        bool
	}
	bench struct {
		count     int
		valueSize int
	}
}

const (
	flagConfig    = "config"
	flagBackend   = "backend"
	flagDir       = "dir"
	flagCacheSize = "cache-size"
	flagLogLevel  = "log-level"
	flagHex       = "hex"
)

func addRootFlags(cmd *cobra.Command, p *params) {
	defaults := statestore.NewDefaultConfig()
	flags := cmd.PersistentFlags()
	flags.StringVar(&p.root.configPath, flagConfig, "",
		"YAML config file; flags override its values")
	flags.StringVar(&p.root.backend, flagBackend, defaults.Backend,
		"Backing store: badger, pebble or memory")
	flags.StringVar(&p.root.directory, flagDir, defaults.Directory,
		"Directory holding the store")
	flags.IntVar(&p.root.cacheSize, flagCacheSize, defaults.CacheSize,
		"Committed cache entries; 0 disables the write-back cache")
	flags.StringVar(&p.root.logLevel, flagLogLevel, "warn",
		"Log level: debug, info, warn, error or none")
	flags.BoolVar(&p.root.hex, flagHex, false,
		"Keys and values are hex encoded")
}

func addBenchFlags(cmd *cobra.Command, p *params) {
	cmd.Flags().IntVar(&p.bench.count, "count", 100_000,
		"Number of keys to write")
	cmd.Flags().IntVar(&p.bench.valueSize, "value-size", 64,
		"Size in bytes of each value")
}

// loadConfig reads --config over the flag defaults, then applies any flag
// the user set.
func (p *params) loadConfig(cmd *cobra.Command) (*statestore.Config, error) {
	cfg := statestore.NewDefaultConfig()
	cfg.LogLevel = p.root.logLevel
	if p.root.configPath != "" {
		if err := cfg.Load(p.root.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed(flagBackend) {
		cfg.Backend = p.root.backend
	}
	if flags.Changed(flagDir) {
		cfg.Directory = p.root.directory
	}
	if flags.Changed(flagCacheSize) {
		cfg.CacheSize = p.root.cacheSize
	}
	if flags.Changed(flagLogLevel) {
		cfg.LogLevel = p.root.logLevel
	}
	return cfg, nil
}

func (p *params) decode(arg string) ([]byte, error) {
	if !p.root.hex {
		return []byte(arg), nil
	}
	b, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", arg, err)
	}
	return b, nil
}

func (p *params) encode(b []byte) string {
	if p.root.hex {
		return hex.EncodeToString(b)
	}
	return string(b)
}
