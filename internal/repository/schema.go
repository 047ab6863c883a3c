package repository

import (
	"strings"

	"sortiment/internal/codec"
	"sortiment/internal/db"
	"sortiment/internal/model"
)

const (
	ItemsTable = "sortiment"

	lookupID   = "ID"
	lookupName = "Name"
)

// CategoryTable names the lookup table of a category attribute.
func CategoryTable(identifier string) string {
	return "kategori_" + identifier
}

// storedAttributes are the registry attributes that have a column.
func storedAttributes(registry *model.Registry) []model.Attribute {
	var out []model.Attribute
	for _, a := range registry.Attributes() {
		if a.Type.Storage() != model.StorageNone {
			out = append(out, a)
		}
	}
	return out
}

func columnType(a model.Attribute, d db.Dialect) string {
	if a.Type.Storage() == model.StorageText {
		return "TEXT"
	}
	return d.IntegerType()
}

// SchemaStatements creates the lookup tables and then the items table. The
// first attribute is the primary key; category columns reference their
// lookup table.
func SchemaStatements(registry *model.Registry, d db.Dialect) []string {
	var stmts []string
	for _, a := range registry.Categories() {
		stmts = append(stmts, "CREATE TABLE "+db.Quote(CategoryTable(a.Identifier))+" ("+
			db.Quote(lookupID)+" "+d.IntegerType()+" PRIMARY KEY, "+
			db.Quote(lookupName)+" TEXT)")
	}

	var defs []string
	var fks []string
	for _, a := range storedAttributes(registry) {
		def := db.Quote(a.Identifier) + " " + columnType(a, d)
		if a.Type == model.Category {
			def += " NOT NULL DEFAULT 0"
			fks = append(fks, "FOREIGN KEY ("+db.Quote(a.Identifier)+") REFERENCES "+
				db.Quote(CategoryTable(a.Identifier))+" ("+db.Quote(lookupID)+")")
		}
		defs = append(defs, def)
	}
	defs = append(defs, "PRIMARY KEY ("+db.Quote(registry.Primary().Identifier)+")")
	defs = append(defs, fks...)

	stmts = append(stmts, "CREATE TABLE "+db.Quote(ItemsTable)+" (\n\t"+strings.Join(defs, ",\n\t")+"\n)")
	return stmts
}

// DropStatements removes a previously loaded catalog, items table first.
func DropStatements(registry *model.Registry) []string {
	stmts := []string{"DROP TABLE IF EXISTS " + db.Quote(ItemsTable)}
	for _, a := range registry.Categories() {
		stmts = append(stmts, "DROP TABLE IF EXISTS "+db.Quote(CategoryTable(a.Identifier)))
	}
	return stmts
}

// InsertItemStatement inserts one item row with every stored column bound.
func InsertItemStatement(registry *model.Registry, d db.Dialect) string {
	attrs := storedAttributes(registry)
	cols := make([]string, len(attrs))
	phs := make([]string, len(attrs))
	for i, a := range attrs {
		cols[i] = db.Quote(a.Identifier)
		phs[i] = d.Placeholder(i + 1)
	}
	return "INSERT INTO " + db.Quote(ItemsTable) + " (" + strings.Join(cols, ", ") +
		") VALUES (" + strings.Join(phs, ", ") + ")"
}

func insertLookupStatement(identifier string, d db.Dialect) string {
	return "INSERT INTO " + db.Quote(CategoryTable(identifier)) + " (" +
		db.Quote(lookupID) + ", " + db.Quote(lookupName) + ") VALUES (" +
		d.Placeholder(1) + ", " + d.Placeholder(2) + ")"
}

// itemRow returns the column values of item in registry order. Missing
// category values become 0 and other missing values NULL.
func itemRow(attrs []model.Attribute, item model.Item) []any {
	row := make([]any, len(attrs))
	for i, a := range attrs {
		row[i] = codec.Storage(a, item[a.Identifier])
	}
	return row
}

// lookupRows pairs every label with its index.
func lookupRows(labels *model.LabelSet) [][]any {
	values := labels.Labels()
	rows := make([][]any, len(values))
	for i, label := range values {
		rows[i] = []any{int64(i), label}
	}
	return rows
}
