package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sortiment/internal/db"
	"sortiment/internal/model"
	"sortiment/internal/observability"
)

// Loader replaces the stored catalog. A failed load leaves the previous
// catalog in place.
type Loader interface {
	Load(ctx context.Context, catalog *model.Catalog) error
}

// NewLoader returns the COPY based loader for PostgreSQL and the
// statement based loader for everything else.
func NewLoader(dsn string, registry *model.Registry, logger *zap.Logger) Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if db.IsPostgresURL(dsn) {
		return &CopyLoader{URL: dsn, Registry: registry, Logger: logger.Named("copy-loader")}
	}
	return &SQLLoader{DSN: dsn, Registry: registry, Logger: logger.Named("sql-loader")}
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// SQLLoader writes the catalog with prepared INSERTs through database/sql.
type SQLLoader struct {
	DSN      string
	Registry *model.Registry
	Logger   *zap.Logger
}

func (l *SQLLoader) Load(ctx context.Context, catalog *model.Catalog) (err error) {
	start := time.Now()

	store, err := db.Open(ctx, l.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	tx, err := store.BeginTx(ctx, nil)
	if err != nil {
		return db.Wrap("begin", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = l.DropSchema(ctx, tx); err != nil {
		return err
	}
	if err = l.CreateSchema(ctx, tx, store.Dialect); err != nil {
		return err
	}
	if err = l.LoadCategoryLookups(ctx, tx, store.Dialect, catalog); err != nil {
		return err
	}
	if err = l.LoadItems(ctx, tx, store.Dialect, catalog); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return db.Wrap("commit", err)
	}

	observability.StoreRowsLoaded.Add(float64(catalog.Len()))
	l.Logger.Info("catalog loaded",
		zap.String("dialect", store.Dialect.Name()),
		zap.Int("items", catalog.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (l *SQLLoader) DropSchema(ctx context.Context, ex Execer) error {
	for _, stmt := range DropStatements(l.Registry) {
		if _, err := ex.ExecContext(ctx, stmt); err != nil {
			return db.Wrap("drop schema", err)
		}
	}
	return nil
}

func (l *SQLLoader) CreateSchema(ctx context.Context, ex Execer, d db.Dialect) error {
	for _, stmt := range SchemaStatements(l.Registry, d) {
		l.Logger.Debug("schema", zap.String("sql", stmt))
		if _, err := ex.ExecContext(ctx, stmt); err != nil {
			return db.Wrap("create schema", err)
		}
	}
	return nil
}

// LoadCategoryLookups inserts (index, label) pairs for every category.
func (l *SQLLoader) LoadCategoryLookups(ctx context.Context, ex Execer, d db.Dialect, catalog *model.Catalog) error {
	for _, a := range l.Registry.Categories() {
		labels, ok := catalog.Categories[a.Identifier]
		if !ok {
			labels = model.NewLabelSet()
		}

		stmt, err := ex.PrepareContext(ctx, insertLookupStatement(a.Identifier, d))
		if err != nil {
			return db.Wrap("prepare lookup insert", err)
		}
		for _, row := range lookupRows(labels) {
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				stmt.Close()
				return db.Wrap(fmt.Sprintf("insert %s", CategoryTable(a.Identifier)), err)
			}
		}
		stmt.Close()
	}
	return nil
}

// LoadItems inserts one row per item in catalog order.
func (l *SQLLoader) LoadItems(ctx context.Context, ex Execer, d db.Dialect, catalog *model.Catalog) error {
	attrs := storedAttributes(l.Registry)

	stmt, err := ex.PrepareContext(ctx, InsertItemStatement(l.Registry, d))
	if err != nil {
		return db.Wrap("prepare item insert", err)
	}
	defer stmt.Close()

	primary := l.Registry.Primary().Identifier
	for i, item := range catalog.Items {
		if _, err := stmt.ExecContext(ctx, itemRow(attrs, item)...); err != nil {
			return db.Wrap(fmt.Sprintf("insert item %d (%s=%v)", i, primary, item[primary]), err)
		}
	}
	return nil
}
