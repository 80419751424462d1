package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options selects the database backend. Driver is one of mysql, postgres, sqlite.
type Options struct {
	Driver   string
	DSN      string
	LogLevel logger.LogLevel
}

// Dialector builds the gorm dialector for the configured driver.
func Dialector(o Options) (gorm.Dialector, error) {
	switch o.Driver {
	case "", "mysql":
		return mysql.Open(o.DSN), nil
	case "postgres":
		return postgres.Open(o.DSN), nil
	case "sqlite":
		return sqlite.Open(o.DSN), nil
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", o.Driver)
	}
}

func OpenGorm(o Options) (*gorm.DB, error) {
	dial, err := Dialector(o)
	if err != nil {
		return nil, err
	}
	db, err := OpenGormWithDialector(dial, o.LogLevel)
	if err != nil {
		return nil, err
	}
	if o.Driver == "sqlite" {
		// sqlite serialises writers anyway; one conn avoids SQLITE_BUSY on concurrent tx
		sqlDB, err := SQLDB(db)
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	log.Info().Str("driver", dial.Name()).Msg("gorm: connected")
	return db, nil
}

// OpenGormWithDialector opens gorm on an arbitrary dialector, applies pool
// settings and pings. An optional log level overrides the default (warn).
func OpenGormWithDialector(dial gorm.Dialector, level ...logger.LogLevel) (*gorm.DB, error) {
	lvl := logger.Warn
	if len(level) > 0 && level[0] != 0 {
		lvl = level[0]
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:               logger.Default.LogMode(lvl),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// SQLDB returns the pool behind gdb.
func SQLDB(gdb *gorm.DB) (*sql.DB, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("db: connection pool: %w", err)
	}
	return sqlDB, nil
}

// GormLogLevel maps a zerolog-style level name onto gorm's logger levels.
func GormLogLevel(name string) logger.LogLevel {
	switch name {
	case "debug", "trace":
		return logger.Info
	case "error", "fatal", "panic":
		return logger.Error
	case "disabled":
		return logger.Silent
	default:
		return logger.Warn
	}
}
