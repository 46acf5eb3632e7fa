package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds environment-driven configuration.
type Config struct {
	Port      string   `koanf:"port"`
	StaticDir string   `koanf:"static_dir"`
	UIAPIURL  string   `koanf:"ui_api_url"`
	LogLevel  string   `koanf:"log_level"`
	LogFormat string   `koanf:"log_format"`
	DB        Database `koanf:"db"`
}

// Database describes how to reach the participants table.
type Database struct {
	Driver       string `koanf:"driver"`
	Host         string `koanf:"host"`
	Port         string `koanf:"port"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name"`
	URL          string `koanf:"url"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	Migrate      bool   `koanf:"migrate"`
}

var defaults = map[string]any{
	"port":              "3000",
	"static_dir":        "public",
	"log_level":         "info",
	"log_format":        "text",
	"db.driver":         "mysql",
	"db.host":           "localhost",
	"db.max_open_conns": 10,
	"db.migrate":        true,
}

// environment variable -> koanf key
var envKeys = map[string]string{
	"PORT":              "port",
	"STATIC_DIR":        "static_dir",
	"UI_API_URL":        "ui_api_url",
	"LOG_LEVEL":         "log_level",
	"LOG_FORMAT":        "log_format",
	"DB_DRIVER":         "db.driver",
	"DB_HOST":           "db.host",
	"DB_PORT":           "db.port",
	"DB_USER":           "db.user",
	"DB_PASSWORD":       "db.password",
	"DB_NAME":           "db.name",
	"DATABASE_URL":      "db.url",
	"DB_MAX_OPEN_CONNS": "db.max_open_conns",
	"DB_MIGRATE":        "db.migrate",
}

// Load reads configuration from a .env file (when present) and the process
// environment, on top of the built-in defaults.
func Load() (*Config, error) {
	// .env is optional; variables may come from the real environment.
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func (c *Config) validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("config: DB_DRIVER must be one of mysql, postgres, sqlite (got %q)", c.DB.Driver)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("config: PORT cannot be empty")
	}
	if c.DB.Driver == "sqlite" && c.DB.URL == "" && c.DB.Name == "" {
		return fmt.Errorf("config: DB_NAME (sqlite file) or DATABASE_URL is required for sqlite")
	}
	if c.UIAPIURL != "" {
		parsed, err := url.Parse(c.UIAPIURL)
		if err != nil {
			return fmt.Errorf("config: UI_API_URL invalid (%q): %w", c.UIAPIURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: UI_API_URL invalid (%q): missing scheme or host", c.UIAPIURL)
		}
	}
	return nil
}

// DSN returns the data source name for the configured driver. DATABASE_URL
// wins over the individual DB_* settings.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	switch d.Driver {
	case "postgres":
		u := url.URL{
			Scheme:   "postgres",
			Host:     hostPort(d.Host, d.Port, "5432"),
			Path:     "/" + d.Name,
			RawQuery: "sslmode=disable",
		}
		if d.User != "" {
			u.User = url.UserPassword(d.User, d.Password)
		}
		return u.String()
	case "sqlite":
		return d.Name
	default:
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = hostPort(d.Host, d.Port, "3306")
		mc.DBName = d.Name
		return mc.FormatDSN()
	}
}

func hostPort(host, port, fallback string) string {
	if port == "" {
		port = fallback
	}
	return net.JoinHostPort(host, port)
}
