// Package config loads the questgraph configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/questgraph/config.toml
// (~/.config/questgraph/config.toml when XDG_CONFIG_HOME is unset). Every key
// is optional; missing keys keep their defaults:
//
//	quests = "data/quests.json"
//
//	[progress]
//	backend = "file"            # file | postgres | mongo
//	path = "user/progress.json"
//	dsn = ""                    # postgres DSN or mongo URI
//	database = "questgraph"     # mongo database
//
//	[cache]
//	backend = "file"            # file | redis | none
//	dir = ""                    # defaults to $XDG_CACHE_HOME/questgraph
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[layout]
//	node_width = 220
//	node_height = 64
//	h_gap = 120
//	v_gap = 28
//	padding = 40
//
//	[server]
//	addr = ":8080"
//
// Precedence is flags, then environment ([EnvQuests], [EnvProgressDSN]), then
// the file, then defaults.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/layout"
)

// AppName names the config and cache directories.
const AppName = "questgraph"

// Environment overrides.
const (
	EnvQuests      = "QUESTGRAPH_QUESTS"
	EnvProgressDSN = "QUESTGRAPH_PROGRESS_DSN"
)

// Backend names.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
	BackendNone     = "none"
)

var (
	progressBackends = []string{BackendFile, BackendPostgres, BackendMongo}
	cacheBackends    = []string{BackendFile, BackendRedis, BackendNone}
)

// Config is the full configuration.
type Config struct {
	Quests   string         `toml:"quests"`
	Progress ProgressConfig `toml:"progress"`
	Cache    CacheConfig    `toml:"cache"`
	Layout   layout.Config  `toml:"layout"`
	Server   ServerConfig   `toml:"server"`
}

// ProgressConfig selects where the completion set is stored.
type ProgressConfig struct {
	Backend  string `toml:"backend"`
	Path     string `toml:"path"`
	DSN      string `toml:"dsn"`
	Database string `toml:"database"`
}

// CacheConfig selects the layout cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password,omitempty"`
	RedisDB       int      `toml:"redis_db,omitempty"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures `questgraph serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Quests: "data/quests.json",
		Progress: ProgressConfig{
			Backend:  BackendFile,
			Path:     "user/progress.json",
			Database: AppName,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration(24 * time.Hour),
		},
		Layout: layout.DefaultConfig(),
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the cache directory (~/.cache/questgraph/).
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the configuration at path and applies environment overrides.
// An empty path means the default location, where a missing file is not an
// error. A missing file at an explicit path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if cfg, err = Decode(data); err != nil {
			return Config{}, err
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

// Decode parses TOML on top of the defaults. Unknown keys are rejected.
func Decode(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	cfg.Layout = cfg.Layout.WithDefaults()
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvQuests); v != "" {
		c.Quests = v
	}
	if v := getenv(EnvProgressDSN); v != "" {
		c.Progress.DSN = v
	}
}

// Validate checks backend names and geometry.
func (c Config) Validate() error {
	if !slices.Contains(progressBackends, c.Progress.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "progress.backend %q (must be one of: %s)",
			c.Progress.Backend, strings.Join(progressBackends, ", "))
	}
	if c.Progress.Backend != BackendFile && c.Progress.DSN == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "progress.dsn is required for the %s backend", c.Progress.Backend)
	}
	if !slices.Contains(cacheBackends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (must be one of: %s)",
			c.Cache.Backend, strings.Join(cacheBackends, ", "))
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if err := c.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Init writes the default configuration to path, creating parent
// directories. It refuses to overwrite an existing file unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidInput, "config file %s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
