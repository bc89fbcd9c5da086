package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasambhusal/sajha-gyan/internal/store"
)

// isolate runs the test from an empty directory so no stray .env or
// config.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "sajhagyan", cfg.Namespace)
	assert.Equal(t, store.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, 10, cfg.Session.MaxQuestions)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, 30*time.Minute, cfg.Store.MaxConnLifetime)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
namespace: school
store:
  driver: memory
session:
  max_questions: 5
`), 0o644))

	t.Setenv("SAJHA_HISTORY_LIMIT", "20")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "school", cfg.Namespace)
	assert.Equal(t, store.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Session.MaxQuestions)
	assert.Equal(t, 20, cfg.History.Limit)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SAJHA_NAMESPACE=dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SAJHA_NAMESPACE") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv", cfg.Namespace)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Namespace: "ns",
			Store:     Store{Driver: store.DriverSQLite},
			Session:   Session{MaxQuestions: 10},
			History:   History{Limit: 50},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty namespace", func(c *Config) { c.Namespace = " " }, true},
		{"unknown driver", func(c *Config) { c.Store.Driver = "etcd" }, true},
		{"redis without addr", func(c *Config) { c.Store.Driver = store.DriverRedis }, true},
		{"redis with addr", func(c *Config) {
			c.Store.Driver = store.DriverRedis
			c.Store.RedisAddr = "localhost:6379"
		}, false},
		{"postgres without url", func(c *Config) { c.Store.Driver = store.DriverPostgres }, true},
		{"zero questions", func(c *Config) { c.Session.MaxQuestions = 0 }, true},
		{"zero history", func(c *Config) { c.History.Limit = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStoreOptionsDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SAJHA_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	c := &Config{Store: Store{Driver: store.DriverSQLite}}
	opts, err := c.StoreOptions()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sajha-gyan", "sajha.db"), opts.Path)
}
