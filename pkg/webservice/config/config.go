// Package config reads the service settings from the environment. A .env
// file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	// BaseURL is the path prefix in front of /bottles.
	BaseURL string

	// Debug exposes failure details in 400 and 503 bodies.
	Debug bool

	// ServerName is the host used in generated URLs. Empty means the
	// request Host.
	ServerName         string
	ImageRoot          string
	Port               string
	ImageSweepSchedule string
	APIVersion         string
	Database           Database
}

type Database struct {
	Driver   string
	Username string
	Password string
	Hostname string
	Name     string
	Schema   string

	// Path is the sqlite file.
	Path string
}

// Load reads .env (if any) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		BaseURL:            strings.TrimRight(get("BASE_URL", ""), "/"),
		ServerName:         get("SERVER_NAME", ""),
		ImageRoot:          get("IMAGE_ROOT", "images"),
		Port:               get("PORT", "1337"),
		ImageSweepSchedule: get("IMAGE_SWEEP_SCHEDULE", ""),
		APIVersion:         get("API_VERSION", "1.0.0"),
		Database: Database{
			Driver:   strings.ToLower(get("DB_DRIVER", DriverPostgres)),
			Username: get("DB_USERNAME", ""),
			Password: getenv("DB_PASSWORD"),
			Hostname: get("DB_HOSTNAME", ""),
			Name:     get("DB_DBNAME", ""),
			Schema:   get("DB_SCHEMA", ""),
			Path:     get("DB_PATH", "bottles.db"),
		},
	}

	if raw := get("DEBUG", "false"); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("DEBUG: %w", err)
		}
		cfg.Debug = debug
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.Database.Driver)
	}
	return cfg, nil
}

// DSN returns the connection string for the configured driver.
func (d Database) DSN() (string, error) {
	if d.Driver == DriverSQLite {
		return d.Path, nil
	}
	if d.Hostname == "" || d.Username == "" || d.Name == "" {
		return "", fmt.Errorf("missing DB env vars; need DB_HOSTNAME, DB_USERNAME, DB_DBNAME")
	}

	host := d.Hostname
	if !strings.Contains(host, ":") {
		host += ":5432"
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   host,
		Path:   d.Name,
		User:   url.UserPassword(d.Username, d.Password),
	}
	q := u.Query()
	if d.Schema != "" {
		q.Set("search_path", d.Schema)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
