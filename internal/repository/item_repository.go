package repository

import (
	"context"
	"database/sql"

	"sortiment/internal/db"
	"sortiment/internal/model"
)

// ItemRepository reads the loaded catalog.
type ItemRepository struct {
	DB       *db.DB
	Registry *model.Registry
}

func NewItemRepository(store *db.DB, registry *model.Registry) *ItemRepository {
	return &ItemRepository{DB: store, Registry: registry}
}

// List returns the number of items matching p and the requested page.
// Category values are returned as their labels, booleans as bool and
// missing values as nil.
func (r *ItemRepository) List(ctx context.Context, p ListParams) (int64, []model.Item, error) {
	q := BuildList(r.Registry, r.DB.Dialect, p)

	var total int64
	if err := r.DB.QueryRowContext(ctx, q.Count.SQL, q.Count.Args...).Scan(&total); err != nil {
		return 0, nil, db.Wrap("count items", err)
	}

	rows, err := r.DB.QueryContext(ctx, q.Page.SQL, q.Page.Args...)
	if err != nil {
		return 0, nil, db.Wrap("list items", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows, q.Columns)
		if err != nil {
			return 0, nil, db.Wrap("scan item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, db.Wrap("list items", err)
	}

	return total, items, nil
}

func scanItem(rows *sql.Rows, columns []model.Attribute) (model.Item, error) {
	ints := make([]sql.NullInt64, len(columns))
	texts := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i, a := range columns {
		if a.Type.Storage() == model.StorageText || a.Type == model.Category {
			dest[i] = &texts[i]
		} else {
			dest[i] = &ints[i]
		}
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	item := make(model.Item, len(columns))
	for i, a := range columns {
		switch {
		case a.Type.Storage() == model.StorageText || a.Type == model.Category:
			if texts[i].Valid {
				item[a.Identifier] = texts[i].String
			} else {
				item[a.Identifier] = nil
			}
		case !ints[i].Valid:
			item[a.Identifier] = nil
		case a.Type == model.Boolean:
			item[a.Identifier] = ints[i].Int64 != 0
		default:
			item[a.Identifier] = ints[i].Int64
		}
	}
	return item, nil
}

// CategoryLabels returns index to label for a category attribute. Unknown
// and non-category identifiers yield an empty map.
func (r *ItemRepository) CategoryLabels(ctx context.Context, identifier string) (map[int64]string, error) {
	labels := map[int64]string{}
	if !r.Registry.IsCategory(identifier) {
		return labels, nil
	}

	table := CategoryTable(identifier)
	query := "SELECT " + db.Quote(lookupID) + ", " + db.Quote(lookupName) +
		" FROM " + db.Quote(table) + " ORDER BY " + db.Quote(lookupID)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, db.Wrap("read "+table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name sql.NullString
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, db.Wrap("scan "+table, err)
		}
		labels[id] = name.String
	}
	if err := rows.Err(); err != nil {
		return nil, db.Wrap("read "+table, err)
	}
	return labels, nil
}
