package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable that overrides a configuration key,
// e.g. ATHENA_DATABASE_DSN overrides database.dsn.
const EnvPrefix = "ATHENA"

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env        string           `yaml:"env"`        // Env is the current environment: local, development, production.
	Database   DatabaseConfig   `yaml:"database"`   // Database holds the database configuration.
	HTTP       HTTPConfig       `yaml:"http"`       // HTTP holds the public API listener configuration.
	Monitoring MonitoringConfig `yaml:"monitoring"` // Monitoring holds the health and metrics listener configuration.
}

// DatabaseConfig struct holds the configuration details for connecting to the employee database.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`            // Driver is one of mysql, postgres, sqlite.
	DSN             string        `yaml:"dsn"`               // DSN is the driver specific connection string.
	EnsureCreated   bool          `yaml:"ensure_created"`    // EnsureCreated creates the employees table on start-up.
	MaxOpenConns    int           `yaml:"max_open_conns"`    // MaxOpenConns limits open connections in the pool.
	MaxIdleConns    int           `yaml:"max_idle_conns"`    // MaxIdleConns limits idle connections in the pool.
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"` // ConnMaxLifetime is the maximum age of a pooled connection.
}

// HTTPConfig struct holds the configuration of the employee API listener.
type HTTPConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"` // CORSOrigins enables CORS for the listed origins; empty disables it.
}

// MonitoringConfig struct holds the address of the /healthz and /metrics listener.
type MonitoringConfig struct {
	Address string `yaml:"address"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("database.driver", DriverMySQL)
	v.SetDefault("database.ensure_created", true)
	v.SetDefault("database.max_open_conns", 25) //nolint:mnd // pool defaults
	v.SetDefault("database.max_idle_conns", 5)  //nolint:mnd // pool defaults
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("http.address", ":5000")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("http.idle_timeout", "1m")
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("http.cors_origins", []string{})
	v.SetDefault("monitoring.address", ":8080")
}

// Load reads the configuration from an optional YAML file pointed to by CONFIG_PATH,
// then applies ATHENA_* environment overrides. A .env file in the working directory
// is loaded into the environment first when it exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	vpr := viper.New()
	setDefaults(vpr)
	vpr.SetEnvPrefix(EnvPrefix)
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var err error
	cfg := &Config{
		Env: vpr.GetString("env"),
		Database: DatabaseConfig{
			Driver:        strings.ToLower(vpr.GetString("database.driver")),
			DSN:           vpr.GetString("database.dsn"),
			EnsureCreated: vpr.GetBool("database.ensure_created"),
			MaxOpenConns:  vpr.GetInt("database.max_open_conns"),
			MaxIdleConns:  vpr.GetInt("database.max_idle_conns"),
		},
		HTTP: HTTPConfig{
			Address:     vpr.GetString("http.address"),
			CORSOrigins: splitList(vpr.GetStringSlice("http.cors_origins")),
		},
		Monitoring: MonitoringConfig{
			Address: vpr.GetString("monitoring.address"),
		},
	}

	durations := map[string]*time.Duration{
		"database.conn_max_lifetime": &cfg.Database.ConnMaxLifetime,
		"http.read_timeout":          &cfg.HTTP.ReadTimeout,
		"http.write_timeout":         &cfg.HTTP.WriteTimeout,
		"http.idle_timeout":          &cfg.HTTP.IdleTimeout,
		"http.shutdown_timeout":      &cfg.HTTP.ShutdownTimeout,
	}
	for key, dst := range durations {
		if *dst, err = cast.ToDurationE(vpr.Get(key)); err != nil {
			return nil, fmt.Errorf("failed to parse %s from configuration: %w", key, err)
		}
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad loads the configuration and panics if it cannot be loaded or is invalid.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return errors.New("database connection string is empty, set database.dsn or " + EnvPrefix + "_DATABASE_DSN")
	}

	return nil
}

// splitList flattens comma separated entries, which is how lists arrive from environment variables.
func splitList(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
	}

	return result
}
