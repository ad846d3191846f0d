package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pocketledger/backend/internal/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ContextKey string

const (
	ContextURL ContextKey = "pocketledger-url"
)

// Connect opens the database described by the configuration, migrates the
// schema and registers the error callbacks.
//
// If a host is configured, postgres is used. Otherwise, a sqlite database
// is created at the configured path.
func Connect(cfg config.Database) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	var dialector gorm.Dialector
	if cfg.Postgres() {
		log.Debug().Str("host", cfg.Host).Int("port", cfg.Port).Str("database", cfg.Name).Msg("using postgresql")
		dialector = postgres.Open(cfg.DSN())
	} else {
		log.Debug().Str("path", cfg.Path).Msg("using sqlite")

		err := os.MkdirAll(filepath.Dir(cfg.Path), os.ModePerm)
		if err != nil {
			return nil, fmt.Errorf("could not create data directory: %w", err)
		}
		dialector = sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", cfg.Path))
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// sqlite only supports one writer at a time. Limiting the pool
	// prevents SQLITE_BUSY errors.
	if !cfg.Postgres() {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(Expense{}, Budget{})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error during DB migration: %w", err)
	}

	err = registerCallbacks(db)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// registerCallbacks registers the callbacks that translate database errors.
func registerCallbacks(db *gorm.DB) error {
	// Query callbacks
	err := db.Callback().Query().After("*").Register("pocketledger:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("pocketledger:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("pocketledger:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("pocketledger:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("pocketledger:after_delete_general", generalCallback)
	if err != nil {
		return err
	}

	// Row callbacks, used for aggregate queries
	return db.Callback().Row().After("*").Register("pocketledger:after_row_general", generalCallback)
}

var plural = regexp.MustCompile("ies$")

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, resourceName(db.Statement.Table))
	}
}

// resourceName returns the singular name of the resource stored in a table
func resourceName(table string) string {
	// Use the table name as information about the type of resource
	// and replace "_" with "[space]"
	name := strings.ReplaceAll(table, "_", " ")

	// Replace pluralized "ies" with "y"
	name = plural.ReplaceAllString(name, "y")

	// Remove plural "s"
	return strings.TrimSuffix(name, "s")
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var sqliteErr *go_sqlite.Error
	var pgErr *pgconn.PgError
	var connectErr *pgconn.ConnectError

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || errors.As(db.Error, &sqliteErr) || errors.As(db.Error, &pgErr) || errors.As(db.Error, &connectErr) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}
