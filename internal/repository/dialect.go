package repository

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

const (
	DriverPgx     = "pgx"
	DriverPq      = "postgres"
	DriverSQLite3 = "sqlite3"
)

type dialect struct {
	driver      string
	placeholder squirrel.PlaceholderFormat
	schema      string
	// SQLite serializes writers; a single connection also keeps an
	// in-memory database alive for the lifetime of the pool.
	singleConn bool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS quests (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    quest_type TEXT NOT NULL,
    description TEXT NOT NULL,
    reward TEXT NOT NULL,
    creator TEXT NOT NULL,
    completed BOOLEAN DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// AUTOINCREMENT keeps SQLite from reusing the id of the most recently
// deleted row.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS quests (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    quest_type TEXT NOT NULL,
    description TEXT NOT NULL,
    reward TEXT NOT NULL,
    creator TEXT NOT NULL,
    completed BOOLEAN DEFAULT 0,
    created_at TIMESTAMP DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
)`

func dialectFor(driver string) (dialect, error) {
	switch strings.ToLower(driver) {
	case "", DriverPgx:
		return dialect{driver: DriverPgx, placeholder: squirrel.Dollar, schema: postgresSchema}, nil
	case DriverPq, "postgresql":
		return dialect{driver: DriverPq, placeholder: squirrel.Dollar, schema: postgresSchema}, nil
	case DriverSQLite3, "sqlite":
		return dialect{driver: DriverSQLite3, placeholder: squirrel.Question, schema: sqliteSchema, singleConn: true}, nil
	default:
		return dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

func isSQLite(driver string) bool {
	d, err := dialectFor(driver)
	return err == nil && d.driver == DriverSQLite3
}
