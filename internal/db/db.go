// Package db opens the gorm connection pool and the key/value storage used by fiber middleware.
package db

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	storagemysql "github.com/gofiber/storage/mysql/v2"
	storagepostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CashGlitch/CashGlitch/internal/config"
	"github.com/CashGlitch/CashGlitch/internal/db/dsn"
	gormadapter "github.com/CashGlitch/CashGlitch/internal/logger/adapter/gorm"
)

// LimiterTable is the table the rate limiter keeps its counters in.
const LimiterTable = "rate_limits"

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// Open opens the gorm connection pool for the configured engine.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.MySQL(cfg))
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Postgres(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(cfg.DB.Name)
	default:
		return nil, errors.Wrap(config.ErrUnknownGormEngine, cfg.DB.GormEngine)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormadapter.New(cfg.DB.LogLevel),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if cfg.DB.GormEngine == config.EngineSQLite {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
	}

	return gdb, nil
}

// NewStorage returns the fiber storage backing the rate limiter.
// MySQL and Postgres share counters across instances; sqlite deployments
// are single instance and return nil, which makes fiber use its in-memory storage.
func NewStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return storagemysql.New(storagemysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         LimiterTable,
		})
	case config.EnginePostgres:
		return storagepostgres.New(storagepostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         LimiterTable,
		})
	default:
		return nil
	}
}
