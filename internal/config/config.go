package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is prepended to every variable name: RESUME_PORT, RESUME_STORE_DRIVER…
const Prefix = "RESUME"

// Config holds the settings for the editor server and resumectl.
type Config struct {
	Port int `envconfig:"PORT" default:"3000"`

	// Backing store for the document slot: file, postgres or sqlite.
	StoreDriver  string `envconfig:"STORE_DRIVER" default:"file"`
	DocumentPath string `envconfig:"DOCUMENT_PATH" default:"content/resume.json"`
	DatabaseURL  string `envconfig:"DATABASE_URL" default:""`
	SQLitePath   string `envconfig:"SQLITE_PATH" default:"content/resume.db"`
	DocumentSlot string `envconfig:"DOCUMENT_SLOT" default:"default"`

	// When set, the editor talks to this remote store instead of the local backend.
	StoreURL     string        `envconfig:"STORE_URL" default:""`
	StoreTimeout time.Duration `envconfig:"STORE_TIMEOUT" default:"10s"`

	ChromePath string `envconfig:"CHROME_PATH" default:""`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
}

// ResolveDefaults normalizes and checks the driver, slot and log level.
func (c *Config) ResolveDefaults() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	if c.StoreDriver == "" {
		c.StoreDriver = "file"
	}
	switch c.StoreDriver {
	case "file":
		if c.DocumentPath == "" {
			return fmt.Errorf("STORE_DRIVER=file requires DOCUMENT_PATH")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires DATABASE_URL")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("STORE_DRIVER=sqlite requires SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	if c.DocumentSlot == "" {
		c.DocumentSlot = "default"
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("invalid STORE_TIMEOUT: %s", c.StoreTimeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// Level is the parsed LOG_LEVEL. Call after ResolveDefaults.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Load reads an optional .env file, then the RESUME_* environment.
func Load() (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()
	return New()
}

// New parses the environment without touching .env.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Log writes the effective configuration without secrets.
func (c *Config) Log(log zerolog.Logger) {
	log.Info().
		Int("port", c.Port).
		Str("store_driver", c.StoreDriver).
		Str("document_path", c.DocumentPath).
		Str("sqlite_path", c.SQLitePath).
		Str("slot", c.DocumentSlot).
		Bool("database_url_present", c.DatabaseURL != "").
		Str("store_url", c.StoreURL).
		Dur("store_timeout", c.StoreTimeout).
		Str("log_level", c.LogLevel).
		Msg("Configuration loaded")
}

// Client holds the RESUME_* settings resumectl reads. It shares the keys of
// Config but needs none of the server's store settings.
type Client struct {
	StoreURL     string        `envconfig:"STORE_URL" default:"http://localhost:3000"`
	StoreTimeout time.Duration `envconfig:"STORE_TIMEOUT" default:"10s"`
	ChromePath   string        `envconfig:"CHROME_PATH" default:""`
}

// LoadClient reads an optional .env file, then the client keys.
func LoadClient() (*Client, error) {
	_ = godotenv.Load()
	var c Client
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &c, nil
}
