package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "RELSAVE_"

type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Log      Log      `yaml:"log"`
	// Strategy is the attachment strategy used when a request names none.
	Strategy string `yaml:"strategy"`
}

type Server struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // gin mode: debug, release, test
}

type Database struct {
	Driver       string `yaml:"driver"` // sqlite | postgres
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
	AutoMigrate  bool   `yaml:"autoMigrate"`
	LogLevel     string `yaml:"logLevel"` // silent, error, warn, info
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

func Default() Config {
	return Config{
		Server: Server{
			Addr: ":8080",
			Mode: "release",
		},
		Database: Database{
			Driver:       "sqlite",
			DSN:          "file::memory:?_foreign_keys=on",
			MaxOpenConns: 10,
			AutoMigrate:  true,
			LogLevel:     "warn",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Strategy: "reference",
	}
}

// Load reads defaults, then the YAML file at path when present, then a .env
// file, then RELSAVE_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("config: load .env: %w", err)
	}

	var err error
	cfg.Server.Addr = getenv("SERVER_ADDR", cfg.Server.Addr)
	cfg.Server.Mode = getenv("SERVER_MODE", cfg.Server.Mode)
	cfg.Database.Driver = getenv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getenv("DB_DSN", cfg.Database.DSN)
	if cfg.Database.MaxOpenConns, err = getenvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns); err != nil {
		return cfg, err
	}
	if cfg.Database.AutoMigrate, err = getenvBool("DB_AUTO_MIGRATE", cfg.Database.AutoMigrate); err != nil {
		return cfg, err
	}
	cfg.Database.LogLevel = getenv("DB_LOG_LEVEL", cfg.Database.LogLevel)
	cfg.Log.Level = getenv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getenv("LOG_FORMAT", cfg.Log.Format)
	cfg.Strategy = getenv("STRATEGY", cfg.Strategy)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("config: database dsn is empty")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Log.Format)
	}
	return nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(envPrefix + k); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getenvInt(k string, fallback int) (int, error) {
	v, ok := os.LookupEnv(envPrefix + k)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("config: %s%s: %q is not an integer", envPrefix, k, v)
	}
	return n, nil
}

func getenvBool(k string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(envPrefix + k)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "1", "true", "yes":
		return true, nil
	case "0", "false", "no":
		return false, nil
	default:
		return fallback, fmt.Errorf("config: %s%s: %q is not a boolean", envPrefix, k, v)
	}
}
