// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/hackaholics/identity/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch db.GormEngine {
	case config.EnginePostgres:
		return postgres(&db)
	case config.EngineSQLite:
		return sqlite(&db)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	}
}

// postgres returns a keyword/value connection string, Extras are appended as is.
func postgres(db *config.DB) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		db.Host,
		db.Port,
		db.User,
		db.Password,
		db.Name,
	)

	if db.Extras != "" {
		out += " " + db.Extras
	}

	return out
}

// sqlite returns the database file path, Extras become the query string.
func sqlite(db *config.DB) string {
	if db.Extras == "" {
		return db.Path
	}

	return db.Path + "?" + strings.TrimPrefix(db.Extras, "?")
}

// Redact returns dsn with its password replaced, for logging.
func Redact(cfg *config.Config) string {
	if cfg.DB.Password == "" {
		return Create(cfg)
	}

	redacted := *cfg
	redacted.DB.Password = "xxxxx"

	return Create(&redacted)
}
