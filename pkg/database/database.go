// Package database opens the GORM connection backing the moderation history.
package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported database types.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeMySQL    = "mysql"
)

// Types lists the supported database types.
var Types = []string{TypeSQLite, TypePostgres, TypeMySQL}

// Config selects and configures the database.
type Config struct {
	Type string
	DSN  string
	// LogLevel is one of silent, error, warn, info. Defaults to warn.
	LogLevel string
}

// DefaultConfig returns an in-memory SQLite database.
func DefaultConfig() Config {
	return Config{Type: TypeSQLite, DSN: ":memory:", LogLevel: "warn"}
}

func dialector(cfg Config) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Type) {
	case "", TypeSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		return sqlite.Open(dsn), nil
	case TypePostgres, "postgresql":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("database DSN is required for %s", cfg.Type)
		}
		return postgres.Open(cfg.DSN), nil
	case TypeMySQL:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("database DSN is required for %s", cfg.Type)
		}
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q (supported: %s)", cfg.Type, strings.Join(Types, ", "))
	}
}

func logLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Open connects to the configured database.
func Open(cfg Config) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", d.Name(), err)
	}

	// Every connection to :memory: is a separate database.
	if d.Name() == TypeSQLite && isMemory(cfg.DSN) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isMemory(dsn string) bool {
	return dsn == "" || dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
