package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"sortiment/internal/db"
	"sortiment/internal/model"
	"sortiment/internal/observability"
)

// CopyLoader bulk loads a PostgreSQL store with COPY inside one transaction.
type CopyLoader struct {
	URL      string
	Registry *model.Registry
	Logger   *zap.Logger
}

func (l *CopyLoader) Load(ctx context.Context, catalog *model.Catalog) error {
	start := time.Now()

	conn, err := db.NewPgx(ctx, l.URL)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return db.Wrap("begin", err)
	}
	// no-op once committed
	defer tx.Rollback(ctx)

	stmts := append(DropStatements(l.Registry), SchemaStatements(l.Registry, db.Postgres)...)
	for _, stmt := range stmts {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return db.Wrap("schema", err)
		}
	}

	for _, a := range l.Registry.Categories() {
		labels, ok := catalog.Categories[a.Identifier]
		if !ok {
			labels = model.NewLabelSet()
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{CategoryTable(a.Identifier)},
			[]string{lookupID, lookupName},
			pgx.CopyFromRows(lookupRows(labels)),
		)
		if err != nil {
			return db.Wrap("copy "+CategoryTable(a.Identifier), err)
		}
	}

	attrs := storedAttributes(l.Registry)
	columns := make([]string, len(attrs))
	for i, a := range attrs {
		columns[i] = a.Identifier
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{ItemsTable},
		columns,
		pgx.CopyFromSlice(len(catalog.Items), func(i int) ([]any, error) {
			return itemRow(attrs, catalog.Items[i]), nil
		}),
	)
	if err != nil {
		return db.Wrap("copy "+ItemsTable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return db.Wrap("commit", err)
	}

	observability.StoreRowsLoaded.Add(float64(n))
	l.Logger.Info("catalog copied",
		zap.Int64("items", n),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
