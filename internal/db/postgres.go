package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	_ "github.com/lib/pq"
)

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (postgresDialect) IntegerType() string { return "BIGINT" }

func (postgresDialect) Contains(column, placeholder string) string {
	return column + " LIKE " + placeholder
}

func (postgresDialect) ContainsArg(term string) any { return "%" + term + "%" }

// LimitArg binds NULL for "no limit"; LIMIT NULL is LIMIT ALL.
func (postgresDialect) LimitArg(limit int) any {
	if limit < 0 {
		return nil
	}
	return int64(limit)
}

// IsPostgresURL reports whether dsn selects the PostgreSQL backend.
func IsPostgresURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func openPostgres(url string) (*sql.DB, error) {
	return sql.Open("postgres", url)
}

// NewPgx opens a single pgx connection, used for COPY based bulk loads.
func NewPgx(ctx context.Context, url string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return nil, Wrap("connect", err)
	}
	return conn, nil
}
