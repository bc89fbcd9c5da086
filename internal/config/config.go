package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kasambhusal/sajha-gyan/internal/store"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env       string  `mapstructure:"env"`       // local, dev, production
	Namespace string  `mapstructure:"namespace"` // key prefix for the four learner documents
	Log       Log     `mapstructure:"log"`
	Store     Store   `mapstructure:"store"`
	Bank      Bank    `mapstructure:"bank"`
	Session   Session `mapstructure:"session"`
	History   History `mapstructure:"history"`
}

// Log configures the zap logger.
type Log struct {
	File string `mapstructure:"file"` // empty = stderr
}

// Store selects the KV backend.
type Store struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"` // SQLite file; empty = DefaultDBPath
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"-"`
	RedisDB         int           `mapstructure:"redis_db"`
	PostgresURL     string        `mapstructure:"-"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// Bank points at the question catalog.
type Bank struct {
	Path string `mapstructure:"path"` // empty = embedded catalog
}

// Session tunes practice sessions.
type Session struct {
	MaxQuestions int `mapstructure:"max_questions"`
}

// History tunes the test history log.
type History struct {
	Limit int `mapstructure:"limit"`
}

// Load reads configuration from an optional .env file, an optional config
// file and SAJHA_* environment variables. A non-empty path forces that
// config file; otherwise config.yaml is searched in the working directory
// and the XDG config dir.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "sajha-gyan"))
		}
	}

	v.SetDefault("env", "local")
	v.SetDefault("namespace", "sajhagyan")
	v.SetDefault("store.driver", store.DriverSQLite)
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.max_conns", 4)
	v.SetDefault("store.max_conn_lifetime", "30m")
	v.SetDefault("session.max_questions", 10)
	v.SetDefault("history.limit", 50)

	v.SetEnvPrefix("SAJHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about.
	_ = v.BindEnv("store.path", "SAJHA_DB")
	_ = v.BindEnv("store.redis_addr", "SAJHA_STORE_REDIS_ADDR", "REDIS_ADDR")
	_ = v.BindEnv("store_redis_password", "SAJHA_REDIS_PASSWORD", "REDIS_PASSWORD")
	_ = v.BindEnv("store_postgres_url", "SAJHA_POSTGRES_URL", "DATABASE_URL")
	_ = v.BindEnv("bank.path", "SAJHA_BANK_PATH")
	_ = v.BindEnv("log.file", "SAJHA_LOG_FILE")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Secrets only come from the environment.
	cfg.Store.RedisPassword = v.GetString("store_redis_password")
	cfg.Store.PostgresURL = v.GetString("store_postgres_url")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.Namespace) == "" {
		errs = append(errs, "namespace must not be empty")
	}
	switch c.Store.Driver {
	case store.DriverSQLite, store.DriverMemory:
	case store.DriverRedis:
		if c.Store.RedisAddr == "" {
			errs = append(errs, "store.redis_addr is required for the redis driver")
		}
	case store.DriverPostgres:
		if c.Store.PostgresURL == "" {
			errs = append(errs, "SAJHA_POSTGRES_URL is required for the postgres driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown store.driver %q", c.Store.Driver))
	}
	if c.Session.MaxQuestions < 1 {
		errs = append(errs, "session.max_questions must be at least 1")
	}
	if c.History.Limit < 1 {
		errs = append(errs, "history.limit must be at least 1")
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// StoreOptions translates the store section for store.OpenKV. The SQLite
// path falls back to store.DefaultDBPath.
func (c *Config) StoreOptions() (store.Options, error) {
	opts := store.Options{
		Driver: c.Store.Driver,
		Path:   c.Store.Path,
		Redis: store.RedisConfig{
			Addr:     c.Store.RedisAddr,
			Password: c.Store.RedisPassword,
			DB:       c.Store.RedisDB,
		},
		Postgres: store.PostgresConfig{
			DSN:             c.Store.PostgresURL,
			MaxConns:        c.Store.MaxConns,
			MaxConnLifetime: c.Store.MaxConnLifetime,
		},
	}
	if opts.Driver == store.DriverSQLite && opts.Path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return opts, err
		}
		opts.Path = p
	} else if opts.Driver == store.DriverSQLite {
		if err := store.EnsureDir(opts.Path); err != nil {
			return opts, fmt.Errorf("create db dir: %w", err)
		}
	}
	return opts, nil
}
