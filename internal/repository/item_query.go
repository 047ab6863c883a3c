package repository

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"sortiment/internal/db"
	"sortiment/internal/model"
)

// ListParams selects one page of items.
type ListParams struct {
	Offset int
	// Limit < 0 returns every matching row.
	Limit int
	// Sort is an attribute identifier; unknown identifiers sort by the
	// primary key.
	Sort string
	// Order is "desc" or anything else for ascending.
	Order string
	// Filters maps category identifiers to a label index (number or numeric
	// string) or a label. Other identifiers are ignored.
	Filters map[string]any
	Search  string
}

type Statement struct {
	SQL  string
	Args []any
}

type ListQuery struct {
	Count Statement
	Page  Statement
	// Columns are the attributes selected by Page, in order.
	Columns []model.Attribute
}

type binder struct {
	dialect db.Dialect
	args    []any
}

func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return b.dialect.Placeholder(len(b.args))
}

// BuildList assembles the count and page queries. Every identifier is
// checked against the registry before it reaches the SQL text and every
// value is bound.
func BuildList(registry *model.Registry, d db.Dialect, p ListParams) ListQuery {
	attrs := storedAttributes(registry)

	cols := make([]string, len(attrs))
	for i, a := range attrs {
		cols[i] = selectColumn(a)
	}

	from := db.Quote(ItemsTable)
	for _, a := range registry.Categories() {
		table := CategoryTable(a.Identifier)
		from += " LEFT JOIN " + db.Quote(table) + " ON " +
			db.Column(table, lookupID) + " = " + db.Column(ItemsTable, a.Identifier)
	}

	count := &binder{dialect: d}
	countSQL := "SELECT COUNT(*) FROM " + from + whereClause(registry, count, p)

	page := &binder{dialect: d}
	pageSQL := "SELECT " + strings.Join(cols, ", ") + " FROM " + from +
		whereClause(registry, page, p) +
		" ORDER BY " + orderClause(registry, p)
	limit := page.bind(d.LimitArg(p.Limit))
	offset := page.bind(int64(max(p.Offset, 0)))
	pageSQL += " LIMIT " + limit + " OFFSET " + offset

	return ListQuery{
		Count:   Statement{SQL: countSQL, Args: count.args},
		Page:    Statement{SQL: pageSQL, Args: page.args},
		Columns: attrs,
	}
}

func selectColumn(a model.Attribute) string {
	if a.Type == model.Category {
		return db.Column(CategoryTable(a.Identifier), lookupName)
	}
	return db.Column(ItemsTable, a.Identifier)
}

// whereClause is (filter AND filter ...) AND (search OR search ...), with
// either group omitted when empty.
func whereClause(registry *model.Registry, b *binder, p ListParams) string {
	var groups []string

	var filters []string
	for _, a := range registry.Categories() {
		v, ok := p.Filters[a.Identifier]
		if !ok {
			continue
		}
		if cond, ok := filterCondition(a, v, b); ok {
			filters = append(filters, cond)
		}
	}
	if len(filters) > 0 {
		groups = append(groups, "("+strings.Join(filters, " AND ")+")")
	}

	if term := CleanSearch(p.Search); term != "" {
		var search []string
		number, numErr := strconv.ParseInt(term, 10, 64)
		for _, a := range registry.Attributes() {
			switch a.Search {
			case model.SearchExact:
				if isNumeric(term) && numErr == nil {
					search = append(search, db.Column(ItemsTable, a.Identifier)+" = "+b.bind(number))
				}
			case model.SearchSubstring:
				search = append(search, b.dialect.Contains(db.Column(ItemsTable, a.Identifier), b.bind(b.dialect.ContainsArg(term))))
			}
		}
		if len(search) > 0 {
			groups = append(groups, "("+strings.Join(search, " OR ")+")")
		}
	}

	if len(groups) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(groups, " AND ")
}

func filterCondition(a model.Attribute, v any, b *binder) (string, bool) {
	index := db.Column(ItemsTable, a.Identifier)
	label := db.Column(CategoryTable(a.Identifier), lookupName)

	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return "", false
		}
		return index + " = " + b.bind(int64(val)), true
	case int:
		return index + " = " + b.bind(int64(val)), true
	case int64:
		return index + " = " + b.bind(val), true
	case string:
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return index + " = " + b.bind(n), true
		}
		return label + " = " + b.bind(val), true
	}
	return "", false
}

func orderClause(registry *model.Registry, p ListParams) string {
	primary := registry.Primary()
	sort, ok := registry.Lookup(p.Sort)
	if !ok || sort.Type.Storage() == model.StorageNone {
		sort = primary
	}

	dir := "ASC"
	if p.Order == "desc" {
		dir = "DESC"
	}

	clause := selectColumn(sort) + " " + dir
	if sort.Identifier != primary.Identifier {
		clause += ", " + db.Column(ItemsTable, primary.Identifier) + " ASC"
	}
	return clause
}

// CleanSearch keeps only letters and digits of term.
func CleanSearch(term string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, term)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
