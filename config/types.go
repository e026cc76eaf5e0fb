// Package config provides configuration management for the idkit relying-party client.
package config

import (
	"time"
)

// Config is the root configuration structure for an idkit integration.
type Config struct {
	Environment string         `yaml:"environment" json:"environment"`
	Bridge      *BridgeConfig  `yaml:"bridge" json:"bridge"`
	Signing     *SigningConfig `yaml:"signing" json:"signing"`
	Logging     *LoggingConfig `yaml:"logging" json:"logging"`
	Metrics     *MetricsConfig `yaml:"metrics" json:"metrics"`
	Audit       *AuditConfig   `yaml:"audit" json:"audit"`
}

// BridgeConfig controls how sessions talk to the rendezvous bridge.
type BridgeConfig struct {
	BaseURL      string        `yaml:"base_url" json:"base_url"`
	HTTPTimeout  time.Duration `yaml:"http_timeout" json:"http_timeout"`
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`
	DefaultWait  time.Duration `yaml:"default_wait" json:"default_wait"`
}

// SigningConfig controls RP-signature generation defaults.
type SigningConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" json:"default_ttl"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" json:"level"`
	Format   string `yaml:"format" json:"format"`
	Output   string `yaml:"output" json:"output"`
	FilePath string `yaml:"file_path" json:"file_path"`
}

// MetricsConfig represents the Prometheus metrics listener configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
	Path    string `yaml:"path" json:"path"`
}

// AuditConfig controls the optional Postgres-backed session audit trail.
// Only non-secret metadata is ever written here (see storage/postgres).
type AuditConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	DSN     string `yaml:"dsn" json:"dsn"`
}

// ValidationError describes a single configuration problem.
type ValidationError struct {
	Field   string
	Message string
	Level   string // "error" or "warning"
}
