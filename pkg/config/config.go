// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/cns-wmi/pkg/defaults"
	"github.com/NVIDIA/cns-wmi/pkg/errors"
	"github.com/NVIDIA/cns-wmi/pkg/wmi"
)

// Environment variables that override file values.
const (
	EnvTimeout        = "CNS_WMI_TIMEOUT"
	EnvSoftNamespaces = "CNS_WMI_SOFT_NAMESPACES"
	EnvThreadingModel = "CNS_WMI_THREADING_MODEL"
	EnvConcurrency    = "CNS_WMI_MAX_CONCURRENCY"
	EnvLogLevel       = "LOG_LEVEL"
)

// Config is the runtime configuration shared by the CLI and the server.
type Config struct {
	WMI     WMIConfig   `yaml:"wmi" toml:"wmi"`
	Log     LogConfig   `yaml:"log" toml:"log"`
	Queries []wmi.Query `yaml:"queries,omitempty" toml:"queries"`
}

// WMIConfig controls query handlers.
type WMIConfig struct {
	// TimeoutMillis is the per-query timeout; -1 waits forever.
	TimeoutMillis int64 `yaml:"timeoutMillis" toml:"timeout_millis"`
	// SoftNamespaces are optional providers whose failures are not logged.
	SoftNamespaces []string `yaml:"softNamespaces" toml:"soft_namespaces"`
	// ThreadingModel is the initial COM model: "multithreaded" or "apartment".
	ThreadingModel string `yaml:"threadingModel" toml:"threading_model"`
	// MaxConcurrency bounds parallel queries issued by the collector.
	MaxConcurrency int `yaml:"maxConcurrency" toml:"max_concurrency"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		WMI: WMIConfig{
			TimeoutMillis:  defaults.WMITimeoutMillis,
			SoftNamespaces: append([]string(nil), defaults.WMISoftNamespaces...),
			ThreadingModel: wmi.Multithreaded.String(),
			MaxConcurrency: defaults.WMIMaxConcurrentQueries,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, the optional file at path
// (.yaml, .yml or .toml), the optional dotenv files and finally the process
// environment. The result is validated.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	if len(envFiles) > 0 {
		// existing variables win over dotenv values
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, "failed to load env file", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, fmt.Sprintf("failed to read config %s", path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
			return errors.Wrap(errors.ErrCodeInvalidConfig, fmt.Sprintf("failed to parse YAML config %s", path), err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), c)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, fmt.Sprintf("failed to parse TOML config %s", path), err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("unknown keys in TOML config %s", path),
				map[string]any{"keys": fmt.Sprint(undecoded)})
		}
	default:
		return errors.NewWithContext(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unsupported config format %q", filepath.Ext(path)),
			map[string]any{"path": path})
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, fmt.Sprintf("invalid %s", EnvTimeout), err)
		}
		c.WMI.TimeoutMillis = ms
	}
	if v, ok := os.LookupEnv(EnvSoftNamespaces); ok {
		c.WMI.SoftNamespaces = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvThreadingModel)); v != "" {
		c.WMI.ThreadingModel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvConcurrency)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, fmt.Sprintf("invalid %s", EnvConcurrency), err)
		}
		c.WMI.MaxConcurrency = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks every value that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if err := wmi.ValidateTimeout(c.WMI.TimeoutMillis); err != nil {
		return err
	}
	if _, err := c.WMI.Model(); err != nil {
		return err
	}
	if c.WMI.MaxConcurrency < 1 {
		return errors.NewWithContext(errors.ErrCodeInvalidConfig,
			"maxConcurrency must be at least 1",
			map[string]any{"maxConcurrency": c.WMI.MaxConcurrency})
	}
	for i, q := range c.Queries {
		if err := q.Validate(); err != nil {
			return errors.WrapWithContext(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid query at index %d", i), err,
				map[string]any{"index": i})
		}
	}
	return nil
}

// Model parses the configured threading model.
func (w WMIConfig) Model() (wmi.ThreadingModel, error) {
	switch strings.ToLower(strings.TrimSpace(w.ThreadingModel)) {
	case "", "multithreaded", "mta":
		return wmi.Multithreaded, nil
	case "apartment", "sta":
		return wmi.ApartmentThreaded, nil
	default:
		return 0, errors.NewWithContext(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown threading model %q", w.ThreadingModel),
			map[string]any{"threadingModel": w.ThreadingModel})
	}
}

// HandlerOptions translates the WMI settings into handler options.
func (w WMIConfig) HandlerOptions() []wmi.Option {
	model, err := w.Model()
	if err != nil {
		model = wmi.Multithreaded
	}
	return []wmi.Option{
		wmi.WithTimeout(w.TimeoutMillis),
		wmi.WithThreadingModel(model),
		wmi.WithSoftNamespaces(w.SoftNamespaces...),
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
