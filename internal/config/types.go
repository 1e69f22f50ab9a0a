// Package config provides configuration loading and management for offboard.
//
// Configuration is loaded using Viper, supporting YAML config files and environment
// variable overrides. The package provides sensible defaults that work out of the
// box: cases are kept as YAML files and documents are copied into a local
// directory, both under ./.offboard.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [StoreConfig] selects and configures the case store backend
//   - [ArtifactsConfig] selects and configures the document store
//   - [RemovalConfig] points at the remote employee removal endpoint
//   - [LogConfig] controls structured logging
//
// Configuration priority (highest to lowest):
//  1. Environment variables (OFFBOARD_ prefix, e.g. OFFBOARD_STORE_BACKEND)
//  2. Config file specified by OFFBOARD_CONFIG_PATH
//  3. User config directory (platform-standard):
//     - Linux: ~/.config/offboard/config.yaml
//     - macOS: ~/Library/Application Support/offboard/config.yaml
//     - Windows: %APPDATA%\offboard\config.yaml
//  4. ./offboard.yaml
//  5. [DefaultConfig] defaults
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Artifact backends.
const (
	ArtifactsDir  = "dir"
	ArtifactsHTTP = "http"
)

// ErrInvalidConfig is wrapped by every [Config.Validate] failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used throughout
// the application. Use [DefaultConfig] to get sensible defaults.
type Config struct {
	// Store configures where offboarding cases are persisted.
	Store StoreConfig `mapstructure:"store"`

	// Artifacts configures where uploaded documents go.
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`

	// Removal configures the remote call made when a termination completes.
	Removal RemovalConfig `mapstructure:"removal"`

	// Checklist configures the property-return checklist.
	Checklist ChecklistConfig `mapstructure:"checklist"`

	// Log configures structured logging.
	Log LogConfig `mapstructure:"log"`
}

// StoreConfig selects the case store.
type StoreConfig struct {
	// Backend is one of "file", "memory" or "redis".
	// Default: "file"
	Backend string `mapstructure:"backend"`

	// Dir is the directory holding one YAML file per case (file backend).
	// Default: ".offboard/cases"
	Dir string `mapstructure:"dir"`

	// Redis configures the redis backend.
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	// Addr is host:port of the Redis server.
	// Default: "localhost:6379"
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// KeyPrefix prefixes every key written by the store.
	// Default: "offboard:"
	KeyPrefix string `mapstructure:"key_prefix"`
}

// ArtifactsConfig selects the document store.
type ArtifactsConfig struct {
	// Backend is "dir" (copy into a local directory) or "http" (PUT to a
	// blob service).
	// Default: "dir"
	Backend string `mapstructure:"backend"`

	// Dir is the root directory for the dir backend.
	// Default: ".offboard/artifacts"
	Dir string `mapstructure:"dir"`

	// BaseURL is the blob service URL for the http backend. Uploads go to
	// {base_url}/{employee}/{slot}/{uuid}-{file}.
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds a single upload.
	// Default: 30s
	Timeout time.Duration `mapstructure:"timeout"`
}

// RemovalConfig points at the employee removal endpoint.
//
// When Endpoint is empty, finalization fails with a removal error and the
// case is kept.
type RemovalConfig struct {
	Endpoint string `mapstructure:"endpoint"`

	// Token is sent as a bearer Authorization header when set.
	Token string `mapstructure:"token"`

	// Timeout bounds the removal call.
	// Default: 15s
	Timeout time.Duration `mapstructure:"timeout"`
}

// ChecklistConfig contains property-return checklist settings.
type ChecklistConfig struct {
	// Defaults seeds the checklist of every new case. Each case gets its
	// own copy.
	Defaults []string `mapstructure:"defaults"`
}

// DefaultConfig returns a new [Config] with sensible defaults.
//
// The defaults keep everything on the local disk under ./.offboard and
// need no configuration file.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: StoreFile,
			Dir:     ".offboard/cases",
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "offboard:",
			},
		},
		Artifacts: ArtifactsConfig{
			Backend: ArtifactsDir,
			Dir:     ".offboard/artifacts",
			Timeout: 30 * time.Second,
		},
		Removal: RemovalConfig{
			Timeout: 15 * time.Second,
		},
		Checklist: ChecklistConfig{
			Defaults: []string{"Laptop", "Badge", "Keys", "Company phone"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the selected backends exist and have what they
// need.
func (c *Config) Validate() error {
	var problems []string

	switch c.Store.Backend {
	case StoreFile:
		if strings.TrimSpace(c.Store.Dir) == "" {
			problems = append(problems, "store.dir is required for the file backend")
		}
	case StoreRedis:
		if strings.TrimSpace(c.Store.Redis.Addr) == "" {
			problems = append(problems, "store.redis.addr is required for the redis backend")
		}
	case StoreMemory:
	default:
		problems = append(problems, fmt.Sprintf("store.backend %q is not one of file, memory, redis", c.Store.Backend))
	}

	switch c.Artifacts.Backend {
	case ArtifactsDir:
		if strings.TrimSpace(c.Artifacts.Dir) == "" {
			problems = append(problems, "artifacts.dir is required for the dir backend")
		}
	case ArtifactsHTTP:
		if strings.TrimSpace(c.Artifacts.BaseURL) == "" {
			problems = append(problems, "artifacts.base_url is required for the http backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("artifacts.backend %q is not one of dir, http", c.Artifacts.Backend))
	}

	if c.Artifacts.Timeout < 0 || c.Removal.Timeout < 0 {
		problems = append(problems, "timeouts must not be negative")
	}

	if _, err := c.Log.level(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.Log.format(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
