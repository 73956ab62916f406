package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"p9e.in/tankinspect/pkg/logging"
)

// DB is the connection opened by Connect.
var DB *gorm.DB

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ParseDatabaseURL splits a database URL into a driver name and the DSN that
// driver expects. sqlite:///path is relative to the working directory,
// sqlite:////path is absolute and sqlite://:memory: is an in-memory database.
func ParseDatabaseURL(url string) (driver, dsn string, err error) {
	switch {
	case url == "":
		return "", "", errors.New("database url is empty")
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		if path == ":memory:" {
			return DriverSQLite, "file::memory:?_foreign_keys=on", nil
		}
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			return "", "", fmt.Errorf("database url %q has no path", url)
		}
		return DriverSQLite, path + "?_foreign_keys=on", nil
	case strings.HasPrefix(url, "postgres://"):
		return DriverPostgres, "postgresql://" + strings.TrimPrefix(url, "postgres://"), nil
	case strings.HasPrefix(url, "postgresql://"), strings.Contains(url, "host="):
		return DriverPostgres, url, nil
	default:
		return "", "", fmt.Errorf("unsupported database url scheme in %q", url)
	}
}

// Connect opens the configured database and stores it in DB.
func Connect(cfg DatabaseConfig) (*gorm.DB, error) {
	driver, dsn, err := ParseDatabaseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger:         logging.NewGormLogger(cfg.SlowThreshold),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		if dir := filepath.Dir(strings.SplitN(dsn, "?", 2)[0]); dir != "." && !strings.HasPrefix(dsn, "file::memory:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// One writer at a time; an in-memory database also lives on a
		// single connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	logging.Info().Str("driver", driver).Msg("Connected to database")
	DB = db
	return db, nil
}
