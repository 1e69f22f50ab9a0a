package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by the loader.
	EnvPrefix = "OFFBOARD"

	// ConfigPathEnv names an explicit config file.
	ConfigPathEnv = EnvPrefix + "_CONFIG_PATH"

	appName        = "offboard"
	configFileName = "config.yaml"
	localFileName  = "offboard.yaml"
)

// Loader handles configuration loading with Viper.
//
// Every key of [Config] can be overridden with an environment variable made
// of [EnvPrefix] and the key path joined by underscores, for example
// OFFBOARD_STORE_REDIS_ADDR for store.redis.addr.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader seeded with [DefaultConfig].
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	return &Loader{v: v}
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("store.backend", cfg.Store.Backend)
	v.SetDefault("store.dir", cfg.Store.Dir)
	v.SetDefault("store.redis.addr", cfg.Store.Redis.Addr)
	v.SetDefault("store.redis.password", cfg.Store.Redis.Password)
	v.SetDefault("store.redis.db", cfg.Store.Redis.DB)
	v.SetDefault("store.redis.key_prefix", cfg.Store.Redis.KeyPrefix)

	v.SetDefault("artifacts.backend", cfg.Artifacts.Backend)
	v.SetDefault("artifacts.dir", cfg.Artifacts.Dir)
	v.SetDefault("artifacts.base_url", cfg.Artifacts.BaseURL)
	v.SetDefault("artifacts.timeout", cfg.Artifacts.Timeout)

	v.SetDefault("removal.endpoint", cfg.Removal.Endpoint)
	v.SetDefault("removal.token", cfg.Removal.Token)
	v.SetDefault("removal.timeout", cfg.Removal.Timeout)

	v.SetDefault("checklist.defaults", cfg.Checklist.Defaults)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// Load resolves the config file by priority, applies environment overrides
// and returns the result. Without any config file the defaults are used.
func (l *Loader) Load() (*Config, error) {
	path, err := findConfigFile()
	if err != nil {
		return nil, err
	}
	if path != "" {
		return l.LoadFromFile(path)
	}
	return l.unmarshal()
}

// LoadFromFile loads configuration from a specific file. The format is
// taken from the file extension.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return &cfg, nil
}

// findConfigFile returns the highest priority config file that exists, or
// an empty path when there is none. An explicit OFFBOARD_CONFIG_PATH is
// returned even when missing so the error surfaces.
func findConfigFile() (string, error) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p, nil
	}

	candidates := make([]string, 0, 2)
	if p, err := DefaultConfigPath(); err == nil {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, localFileName)

	for _, p := range candidates {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("error checking config file %s: %w", p, err)
		}
	}
	return "", nil
}

// MustLoad loads configuration and panics on error.
func MustLoad() *Config {
	cfg, err := NewLoader().Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// ConfigDir returns the platform-standard configuration directory for
// offboard, such as ~/.config/offboard on Linux.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

// DefaultConfigPath returns the user-level config file path.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
