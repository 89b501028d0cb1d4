// Copyright 2026 Gravitational, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"

	env "github.com/caarlos0/env/v9"
	"github.com/go-playground/validator/v10"
	"github.com/gravitational/trace"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "SEQ_EXPORT_"

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the settings shared by all commands.
type Config struct {
	// CSVDir receives timestamped CSV exports. Empty means the desktop.
	CSVDir    string `yaml:"csv_dir" env:"CSV_DIR"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" validate:"oneof=text json"`
}

// Load reads the optional YAML file at path, applies environment overrides
// from environ (os.Environ when nil), fills defaults and validates the result.
func Load(path string, environ map[string]string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, trace.ConvertSystemError(err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, trace.BadParameter("parsing %q: %v", path, err)
		}
	}

	// Unset variables leave the file values alone.
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, trace.Wrap(err, "reading configuration from environment")
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
}

// Validate checks field values, e.g. after command line overrides.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return trace.BadParameter("invalid configuration: %v", err)
	}
	return nil
}
