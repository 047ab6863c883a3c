// Package listing serves formatted pages of the loaded catalog.
package listing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sortiment/internal/codec"
	"sortiment/internal/db"
	"sortiment/internal/link"
	"sortiment/internal/model"
	"sortiment/internal/observability"
	"sortiment/internal/repository"
)

// URLField is the computed column added to every row.
const URLField = "url"

// Page is one response of ListItems.
type Page struct {
	Total int64            `json:"total"`
	Rows  []map[string]any `json:"rows"`
}

// Column describes one table column for the index view.
type Column struct {
	Identifier string
	Name       string
	Type       string
	Visible    bool
}

// Service opens the store for each call and never writes to it.
type Service struct {
	DSN      string
	Registry *model.Registry
	Links    *link.Builder
	Logger   *zap.Logger
}

func NewService(dsn string, registry *model.Registry, links *link.Builder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if links == nil {
		links = link.NewBuilder(link.DefaultHost)
	}
	return &Service{DSN: dsn, Registry: registry, Links: links, Logger: logger.Named("listing")}
}

// ListItems returns the total number of matching items and the requested
// page, formatted for display with a product URL per row.
func (s *Service) ListItems(ctx context.Context, p repository.ListParams) (*Page, error) {
	start := time.Now()
	defer func() {
		observability.QueryDuration.Observe(time.Since(start).Seconds())
	}()

	store, err := db.Open(ctx, s.DSN)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	total, items, err := repository.NewItemRepository(store, s.Registry).List(ctx, p)
	if err != nil {
		return nil, err
	}

	page := &Page{Total: total, Rows: make([]map[string]any, 0, len(items))}
	for _, item := range items {
		page.Rows = append(page.Rows, s.row(item))
	}

	s.Logger.Debug("items listed",
		zap.Int64("total", total),
		zap.Int("rows", len(page.Rows)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return page, nil
}

func (s *Service) row(item model.Item) map[string]any {
	row := make(map[string]any, len(item)+1)
	for _, a := range s.Registry.Attributes() {
		if a.Type.Storage() == model.StorageNone {
			continue
		}
		row[a.Identifier] = codec.Format(item[a.Identifier], a.Type)
	}
	row[URLField] = s.url(item)
	return row
}

func (s *Service) url(item model.Item) string {
	primary := s.Registry.Primary().Identifier
	id, _ := item.Int(primary)
	category, _ := item[model.AttrGroup].(string)
	name, _ := item[model.AttrName].(string)

	u, err := s.Links.Build(id, category, name)
	if err != nil {
		s.Logger.Warn("no url for item", zap.Int64(primary, id), zap.Error(err))
		return ""
	}
	return u
}

// Categories maps label index to label for a category attribute. Anything
// else yields an empty map.
func (s *Service) Categories(ctx context.Context, identifier string) (map[int64]string, error) {
	if !s.Registry.IsCategory(identifier) {
		return map[int64]string{}, nil
	}

	store, err := db.Open(ctx, s.DSN)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return repository.NewItemRepository(store, s.Registry).CategoryLabels(ctx, identifier)
}

// Columns lists every attribute in registry order followed by the computed
// url column.
func (s *Service) Columns() []Column {
	attrs := s.Registry.Attributes()
	cols := make([]Column, 0, len(attrs)+1)
	for _, a := range attrs {
		cols = append(cols, Column{
			Identifier: a.Identifier,
			Name:       a.Name,
			Type:       a.Type.String(),
			Visible:    a.Visible,
		})
	}
	return append(cols, Column{
		Identifier: URLField,
		Name:       "URL",
		Type:       model.URL.String(),
		Visible:    true,
	})
}
