// Package db opens the relational store. A postgres:// URL selects
// PostgreSQL; anything else is an SQLite database file.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrStore wraps every open, read and write failure against the store.
var ErrStore = errors.New("store error")

// Dialect covers the SQL differences between the supported engines.
type Dialect interface {
	Name() string
	// Placeholder returns the bind marker for the n-th (1-based) argument.
	Placeholder(n int) string
	IntegerType() string
	// Contains returns a case-sensitive substring predicate on column.
	Contains(column, placeholder string) string
	// ContainsArg wraps an alphanumeric term for Contains.
	ContainsArg(term string) any
	// LimitArg is the value bound to LIMIT; negative means unlimited.
	LimitArg(limit int) any
}

var (
	SQLite   Dialect = sqliteDialect{}
	Postgres Dialect = postgresDialect{}
)

// DB is an open store with its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
	DSN     string
}

// Open opens and pings the store at dsn.
func Open(ctx context.Context, dsn string) (*DB, error) {
	var (
		conn    *sql.DB
		dialect Dialect
		err     error
	)
	if IsPostgresURL(dsn) {
		conn, err = openPostgres(dsn)
		dialect = Postgres
	} else {
		conn, err = openSQLite(dsn)
		dialect = SQLite
	}
	if err != nil {
		return nil, Wrap("open", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, Wrap("ping", err)
	}

	return &DB{DB: conn, Dialect: dialect, DSN: dsn}, nil
}

// Wrap marks err as a store failure during op. nil stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

// Quote returns name as a double-quoted SQL identifier.
func Quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Column returns table.column with both parts quoted.
func Column(table, column string) string {
	return Quote(table) + "." + Quote(column)
}
