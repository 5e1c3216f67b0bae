package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env: development
database:
  driver: postgres
  dsn: postgres://admin:adminpass@db:5432/employees?sslmode=disable
  ensure_created: false
  max_open_conns: 10
  conn_max_lifetime: 10m
http:
  address: ":9000"
  shutdown_timeout: 15s
  cors_origins:
    - http://localhost:3000
monitoring:
  address: ":9100"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "config.yaml")
	filet.File(t, path, content)

	return path
}

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ATHENA_ENV", "local")
	t.Setenv("ATHENA_DATABASE_DSN", "user:pass@tcp(localhost:3306)/employees?parseTime=true")
	t.Setenv("ATHENA_HTTP_CORS_ORIGINS", "http://a.example, http://b.example")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, config.DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "user:pass@tcp(localhost:3306)/employees?parseTime=true", cfg.Database.DSN)
	assert.True(t, cfg.Database.EnsureCreated)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, ":5000", cfg.HTTP.Address)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, time.Minute, cfg.HTTP.IdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, ":8080", cfg.Monitoring.Address)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	t.Setenv("CONFIG_PATH", writeConfig(t, testConfigYAML))

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://admin:adminpass@db:5432/employees?sslmode=disable", cfg.Database.DSN)
	assert.False(t, cfg.Database.EnsureCreated)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, ":9100", cfg.Monitoring.Address)
}

func Test_EnvOverridesFile(t *testing.T) {
	defer filet.CleanUp(t)

	t.Setenv("CONFIG_PATH", writeConfig(t, testConfigYAML))
	t.Setenv("ATHENA_HTTP_ADDRESS", ":7000")
	t.Setenv("ATHENA_DATABASE_DRIVER", "SQLite")
	t.Setenv("ATHENA_DATABASE_DSN", "file::memory:")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.Address)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.DSN)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing dsn", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("ATHENA_DATABASE_DSN", "")

		_, err := config.Load()

		require.ErrorContains(t, err, "database connection string is empty")
	})

	t.Run("unsupported driver", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("ATHENA_DATABASE_DSN", "dsn")
		t.Setenv("ATHENA_DATABASE_DRIVER", "oracle")

		_, err := config.Load()

		require.ErrorContains(t, err, `unsupported database driver "oracle"`)
	})

	t.Run("config file does not exist", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := config.Load()

		require.ErrorContains(t, err, "config file does not exist")
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("ATHENA_DATABASE_DSN", "dsn")
		t.Setenv("ATHENA_HTTP_SHUTDOWN_TIMEOUT", "error_value")

		_, err := config.Load()

		require.ErrorContains(t, err, "failed to parse http.shutdown_timeout from configuration")
	})
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ATHENA_DATABASE_DSN", "")

	assert.PanicsWithValue(t,
		"config error: database connection string is empty, set database.dsn or ATHENA_DATABASE_DSN",
		func() {
			config.MustLoad()
		})
}
