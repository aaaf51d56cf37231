package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gopkg.in/yaml.v3"

	"github.com/yi-nology/envprofile/pkg/profile"
	"github.com/yi-nology/envprofile/pkg/storage"
)

// ActiveProfileEnv overrides profile.active from the process environment.
const ActiveProfileEnv = "APP_PROFILE"

// Config captures service level configuration loaded from config.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  storage.Config `yaml:"storage"`
	Profile  ProfileConfig  `yaml:"profile"`
}

// ProfileConfig selects the environment profile served to front-ends.
type ProfileConfig struct {
	Active    string `yaml:"active"`
	EnvPrefix string `yaml:"env_prefix"`
	Strict    bool   `yaml:"strict"`
	// File optionally lists extra named profiles.
	File string `yaml:"file"`
}

// RedisConfig defines Redis connection settings for distributed locking.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CORSConfig defines CORS middleware settings.
type CORSConfig struct {
	AllowOrigin      string `yaml:"allow_origin"`
	AllowMethods     string `yaml:"allow_methods"`
	AllowHeaders     string `yaml:"allow_headers"`
	AllowCredentials bool   `yaml:"allow_credentials"`
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Address  string `yaml:"address"`
	BasePath string `yaml:"base_path"`
}

// DatabaseConfig defines the database backend configuration.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig contains SQLite specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// MySQLConfig contains MySQL specific connection details.
type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

// PostgresConfig contains PostgreSQL specific connection details.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads a YAML configuration file from the provided path.
// It searches in the current working directory first, then next to the binary executable.
func Load(name string) (*Config, error) {
	cfg := defaultConfig()

	configPath := findConfigFile(name)
	if configPath == "" {
		hlog.Warnf("config file %q not found, using defaults", name)
		applyEnv(cfg)
		return cfg, nil
	}

	hlog.Infof("loading config from: %s", configPath)
	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	var parsed Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&parsed)
	applyEnv(&parsed)
	return &parsed, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path: "data/envprofile.db",
			},
		},
		CORS: CORSConfig{
			AllowOrigin:      "*",
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "*",
			AllowCredentials: false,
		},
		Storage: storage.DefaultConfig(),
		Profile: ProfileConfig{
			Active:    profile.NameDocker,
			EnvPrefix: profile.DefaultEnvPrefix,
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	cfg.Server.BasePath = NormalizeBasePath(cfg.Server.BasePath)
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.SQLite.Path == "" {
		cfg.Database.SQLite.Path = "data/envprofile.db"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.Local.BasePath == "" {
		cfg.Storage.Local.BasePath = storage.DefaultConfig().Local.BasePath
	}
	if cfg.Profile.Active == "" {
		cfg.Profile.Active = profile.NameDocker
	}
	if cfg.Profile.EnvPrefix == "" {
		cfg.Profile.EnvPrefix = profile.DefaultEnvPrefix
	}
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(ActiveProfileEnv); ok && strings.TrimSpace(v) != "" {
		cfg.Profile.Active = strings.TrimSpace(v)
	}
}

// Registry returns the built-in profiles plus those listed in Profile.File.
func (c *Config) Registry() (*profile.Registry, error) {
	reg := profile.Builtin()
	if c.Profile.File == "" {
		return reg, nil
	}
	if err := profile.RegisterFile(reg, c.Profile.File); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadProfile selects and validates the configured profile. It also returns
// the registry the profile was selected from.
func (c *Config) LoadProfile() (*profile.Provider, *profile.Registry, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, nil, err
	}
	prov, err := profile.Load(profile.Options{
		Registry:  reg,
		Name:      c.Profile.Active,
		EnvPrefix: c.Profile.EnvPrefix,
		Strict:    c.Profile.Strict,
	})
	if err != nil {
		return nil, nil, err
	}
	return prov, reg, nil
}

// findConfigFile searches for a config file in the current directory first,
// then next to the binary executable. Returns the full path or empty string.
func findConfigFile(name string) string {
	// 1. Current working directory
	if _, err := os.Stat(name); err == nil {
		abs, _ := filepath.Abs(name)
		return abs
	}

	// 2. Next to the binary executable
	exe, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exe)
		candidate := filepath.Join(exeDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// NormalizeBasePath cleans up user input and returns a URL path prefix suitable for routing.
// Examples:
//
//	"", "/", " ."        -> ""
//	"envprofile"         -> "/envprofile"
//	"/envprofile/"       -> "/envprofile"
//	"/nested/prefix/"    -> "/nested/prefix"
func NormalizeBasePath(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	cleaned := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	if cleaned == "." || cleaned == "/" {
		return ""
	}
	return strings.TrimSuffix(cleaned, "/")
}
