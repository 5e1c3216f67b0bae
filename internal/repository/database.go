package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	sloggorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/models"
)

// Database bundles the GORM handle with the underlying connection pool.
type Database struct {
	gorm  *gorm.DB
	sqlDB *sql.DB
	pool  *pgxpool.Pool // only set for the postgres driver
}

// NewDatabase opens a connection pool for the configured driver and verifies it with a ping.
// The postgres driver runs on a pgx pool bridged into database/sql.
func NewDatabase(cfg config.DatabaseConfig, logHandler slog.Handler) (*Database, error) {
	var (
		ctxTimeout = 5 * time.Second
		idleTime   = 30 * time.Second
		hcPeriod   = 30 * time.Second
	)

	var (
		dialector gorm.Dialector
		pool      *pgxpool.Pool
	)

	switch cfg.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case config.DriverPostgres:
		poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database config: %w", err)
		}

		if cfg.MaxOpenConns > 0 {
			poolConfig.MaxConns = int32(cfg.MaxOpenConns) //nolint:gosec // bounded by configuration
		}
		poolConfig.MaxConnIdleTime = idleTime
		poolConfig.HealthCheckPeriod = hcPeriod

		ctx, cancel := context.WithTimeout(context.Background(), ctxTimeout)
		defer cancel()

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("unable to create connection to PostgreSQL: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: sloggorm.New(sloggorm.WithHandler(logHandler)),
	})
	if err != nil {
		closePool(pool)
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		closePool(pool)
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	dtb := &Database{gorm: gormDB, sqlDB: sqlDB, pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), ctxTimeout)
	defer cancel()

	if err = dtb.PingContext(ctx); err != nil {
		dtb.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	return dtb, nil
}

// NewDatabaseFromGorm wraps an already opened GORM handle.
func NewDatabaseFromGorm(gormDB *gorm.DB) (*Database, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	return &Database{gorm: gormDB, sqlDB: sqlDB}, nil
}

// EnsureCreated creates the employees table when it does not exist yet.
func (d *Database) EnsureCreated(ctx context.Context) error {
	if err := d.gorm.WithContext(ctx).AutoMigrate(&models.Employee{}); err != nil {
		return fmt.Errorf("failed to ensure employees table: %w", err)
	}

	return nil
}

// PingContext verifies that the database is reachable.
func (d *Database) PingContext(ctx context.Context) error {
	return d.sqlDB.PingContext(ctx)
}

// SQL returns the database/sql handle, e.g. for running migrations.
func (d *Database) SQL() *sql.DB {
	return d.sqlDB
}

// Gorm returns the ORM handle.
func (d *Database) Gorm() *gorm.DB {
	return d.gorm
}

// Close releases the connection pool.
func (d *Database) Close() {
	_ = d.sqlDB.Close()
	closePool(d.pool)
}

func closePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
