package db

import (
	"database/sql"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Placeholder(int) string { return "?" }

func (sqliteDialect) IntegerType() string { return "INTEGER" }

// GLOB is case-sensitive where LIKE is not.
func (sqliteDialect) Contains(column, placeholder string) string {
	return column + " GLOB " + placeholder
}

func (sqliteDialect) ContainsArg(term string) any { return "*" + term + "*" }

// LimitArg binds -1 for "no limit". SQLite needs a LIMIT before OFFSET.
func (sqliteDialect) LimitArg(limit int) any {
	if limit < 0 {
		return int64(-1)
	}
	return int64(limit)
}

func openSQLite(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer per file.
	conn.SetMaxOpenConns(1)
	return conn, nil
}
