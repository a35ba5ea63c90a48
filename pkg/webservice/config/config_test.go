package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.BaseURL)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "images", cfg.ImageRoot)
	assert.Equal(t, "1337", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
}

func TestFromEnv_Values(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"BASE_URL":    "/api/",
		"DEBUG":       "true",
		"SERVER_NAME": "bottles.example.org",
		"DB_DRIVER":   "SQLite",
		"DB_PATH":     "/tmp/b.db",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/api", cfg.BaseURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "bottles.example.org", cfg.ServerName)

	dsn, err := cfg.Database.DSN()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/b.db", dsn)
}

func TestFromEnv_Invalid(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{"DEBUG": "maybe"}))
	assert.Error(t, err)

	_, err = FromEnv(envOf(map[string]string{"DB_DRIVER": "mysql"}))
	assert.Error(t, err)
}

func TestDSN_Postgres(t *testing.T) {
	d := Database{
		Driver:   DriverPostgres,
		Username: "user",
		Password: "p@ss",
		Hostname: "db",
		Name:     "bottles",
		Schema:   "public",
	}
	dsn, err := d.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://user:p%40ss@db:5432/bottles?search_path=public", dsn)

	_, err = Database{Driver: DriverPostgres}.DSN()
	assert.Error(t, err)
}
