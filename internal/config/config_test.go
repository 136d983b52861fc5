package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "content/resume.json", cfg.DocumentPath)
	assert.Equal(t, "content/resume.db", cfg.SQLitePath)
	assert.Equal(t, "default", cfg.DocumentSlot)
	assert.Equal(t, 10*time.Second, cfg.StoreTimeout)
	assert.Empty(t, cfg.StoreURL)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("RESUME_PORT", "8081")
	t.Setenv("RESUME_STORE_DRIVER", "SQLite")
	t.Setenv("RESUME_SQLITE_PATH", "/tmp/r.db")
	t.Setenv("RESUME_STORE_TIMEOUT", "3s")
	t.Setenv("RESUME_LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "/tmp/r.db", cfg.SQLitePath)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestResolveDefaults_Rejects(t *testing.T) {
	base := func() Config {
		return Config{Port: 3000, StoreDriver: "file", DocumentPath: "x.json", StoreTimeout: time.Second, LogLevel: "info"}
	}
	cases := map[string]func(*Config){
		"unknown driver":       func(c *Config) { c.StoreDriver = "redis" },
		"postgres without dsn": func(c *Config) { c.StoreDriver = "postgres" },
		"sqlite without path":  func(c *Config) { c.StoreDriver, c.SQLitePath = "sqlite", "" },
		"file without path":    func(c *Config) { c.DocumentPath = "" },
		"bad port":             func(c *Config) { c.Port = 0 },
		"bad timeout":          func(c *Config) { c.StoreTimeout = 0 },
		"bad log level":        func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(&c)
			assert.Error(t, c.ResolveDefaults())
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RESUME_DOCUMENT_SLOT=staging\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("RESUME_DOCUMENT_SLOT")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.DocumentSlot)
}

func TestLoadClient(t *testing.T) {
	c, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", c.StoreURL)
	assert.Equal(t, 10*time.Second, c.StoreTimeout)

	t.Setenv("RESUME_STORE_URL", "http://store:8080")
	t.Setenv("RESUME_CHROME_PATH", "/usr/bin/chromium")
	c, err = LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "http://store:8080", c.StoreURL)
	assert.Equal(t, "/usr/bin/chromium", c.ChromePath)
}
