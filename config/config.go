// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultBridgeBaseURL = "https://bridge.worldcoin.org"

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("failed to parse config file (tried YAML and JSON): %w", err)
		}
	}

	setDefaults(cfg)

	return cfg, nil
}

// SaveToFile saves configuration to a file, choosing format by extension.
func SaveToFile(cfg *Config, path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setDefaults fills in zero-valued fields with the library's production defaults.
func setDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if cfg.Bridge == nil {
		cfg.Bridge = &BridgeConfig{}
	}
	if cfg.Bridge.BaseURL == "" {
		cfg.Bridge.BaseURL = defaultBridgeBaseURL
	}
	if cfg.Bridge.HTTPTimeout == 0 {
		cfg.Bridge.HTTPTimeout = 10 * time.Second
	}
	if cfg.Bridge.PollInterval == 0 {
		cfg.Bridge.PollInterval = 3 * time.Second
	}
	if cfg.Bridge.DefaultWait == 0 {
		cfg.Bridge.DefaultWait = 5 * time.Minute
	}

	if cfg.Signing == nil {
		cfg.Signing = &SigningConfig{}
	}
	if cfg.Signing.DefaultTTL == 0 {
		cfg.Signing.DefaultTTL = 300 * time.Second
	}

	if cfg.Logging == nil {
		cfg.Logging = &LoggingConfig{}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Audit == nil {
		cfg.Audit = &AuditConfig{}
	}
}

// ValidateConfiguration checks the configuration for problems. Only
// "error"-level entries should block startup; "warning" entries are
// informational.
func ValidateConfiguration(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Bridge != nil {
		if !strings.HasPrefix(cfg.Bridge.BaseURL, "https://") && !strings.HasPrefix(cfg.Bridge.BaseURL, "http://") {
			errs = append(errs, ValidationError{
				Field:   "bridge.base_url",
				Message: "must be an absolute http(s) URL",
				Level:   "error",
			})
		}
		if cfg.Bridge.PollInterval <= 0 {
			errs = append(errs, ValidationError{
				Field:   "bridge.poll_interval",
				Message: "must be positive",
				Level:   "error",
			})
		}
	}

	if cfg.Signing != nil && cfg.Signing.DefaultTTL <= 0 {
		errs = append(errs, ValidationError{
			Field:   "signing.default_ttl",
			Message: "must be positive",
			Level:   "error",
		})
	}

	if cfg.Audit != nil && cfg.Audit.Enabled && cfg.Audit.DSN == "" {
		errs = append(errs, ValidationError{
			Field:   "audit.dsn",
			Message: "audit is enabled but no DSN was configured",
			Level:   "error",
		})
	}

	return errs
}
