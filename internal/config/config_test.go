package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverMemory, cfg.Driver)
	assert.Equal(t, "lol-favorites", cfg.FavoritesKey)
	assert.Equal(t, 10*time.Second, cfg.LoadTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle)
	assert.False(t, cfg.Dev)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOL_ADDR=:9999\nLOL_STORAGE_DRIVER=sqlite\n"), 0o600))
	t.Setenv("LOL_STORAGE_DRIVER", "memory")
	t.Setenv("LOL_LOAD_TIMEOUT", "2s")
	// Registers cleanup for the value godotenv is about to set.
	t.Setenv("LOL_ADDR", "")
	os.Unsetenv("LOL_ADDR")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, DriverMemory, cfg.Driver)
	assert.Equal(t, 2*time.Second, cfg.LoadTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"memory", Config{Driver: DriverMemory}, true},
		{"sqlite", Config{Driver: DriverSQLite}, true},
		{"postgres without dsn", Config{Driver: DriverPostgres}, false},
		{"postgres", Config{Driver: DriverPostgres, PostgresDSN: "postgres://x"}, true},
		{"unknown", Config{Driver: "redis"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
