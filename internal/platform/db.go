// Package platform holds the database plumbing shared by the lifescore
// services: opening a connection, dialect differences and migrations.
package platform

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"  // driver: postgres
	_ "modernc.org/sqlite" // driver: sqlite
)

// Driver names a supported SQL backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// DB is a *sql.DB that remembers its dialect.
type DB struct {
	*sql.DB
	Driver Driver
}

// DefaultDSN returns the local development DSN for driver.
func DefaultDSN(driver Driver) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgres://localhost:5432/lifescore?sslmode=disable", nil
	case DriverSQLite:
		return "file:lifescore.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", nil
	default:
		return "", fmt.Errorf("unsupported driver: %s", driver)
	}
}

// Open opens a database for the given driver and checks the connection.
func Open(ctx context.Context, driver Driver, dsn string) (*DB, error) {
	def, err := DefaultDSN(driver)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		dsn = def
	}

	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == DriverSQLite {
		// A single writer avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{DB: db, Driver: driver}, nil
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// Rebind rewrites $N placeholders for the receiver's dialect. Queries are
// written for postgres; sqlite takes ?N.
func (db *DB) Rebind(query string) string {
	if db.Driver != DriverSQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?$1")
}
