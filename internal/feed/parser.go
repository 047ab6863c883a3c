// Package feed reads the published assortment XML into a model.Catalog.
package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"sortiment/internal/codec"
	"sortiment/internal/model"
	"sortiment/internal/observability"
)

var (
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrEmptyFeed        = errors.New("feed has no root element")
)

const (
	elemCreated = "skapad-tid"
	elemInfo    = "info"
	elemArticle = "artikel"
)

type feedInfo struct {
	Message string `xml:"meddelande"`
}

type feedArticle struct {
	Fields []feedField `xml:",any"`
}

type feedField struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

type Parser struct {
	Registry *model.Registry
	Logger   *zap.Logger
}

func NewParser(registry *model.Registry, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{Registry: registry, Logger: logger.Named("feed")}
}

// Parse decodes a whole feed. Any unknown field or malformed value aborts
// the parse; a feed is either loaded completely or not at all.
func (p *Parser) Parse(r io.Reader) (*model.Catalog, error) {
	catalog := &model.Catalog{Categories: make(map[string]*model.LabelSet)}
	for _, a := range p.Registry.Categories() {
		catalog.Categories[a.Identifier] = model.NewLabelSet()
	}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	depth := 0
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read feed: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				depth, sawRoot = 1, true
				continue
			}
			if err := p.decodeChild(dec, el, catalog); err != nil {
				return nil, err
			}
		case xml.EndElement:
			depth--
		}
	}

	if !sawRoot {
		return nil, ErrEmptyFeed
	}

	p.Logger.Info("feed parsed",
		zap.String("created", catalog.Created),
		zap.Int("items", len(catalog.Items)),
		zap.Int("categories", len(catalog.Categories)),
	)
	return catalog, nil
}

func (p *Parser) decodeChild(dec *xml.Decoder, el xml.StartElement, catalog *model.Catalog) error {
	switch el.Name.Local {
	case elemCreated:
		var created string
		if err := dec.DecodeElement(&created, &el); err != nil {
			return fmt.Errorf("failed to decode %s: %w", elemCreated, err)
		}
		catalog.Created = strings.TrimSpace(created)
	case elemInfo:
		var info feedInfo
		if err := dec.DecodeElement(&info, &el); err != nil {
			return fmt.Errorf("failed to decode %s: %w", elemInfo, err)
		}
		catalog.Message = strings.TrimSpace(info.Message)
	case elemArticle:
		var article feedArticle
		if err := dec.DecodeElement(&article, &el); err != nil {
			return fmt.Errorf("failed to decode %s %d: %w", elemArticle, len(catalog.Items), err)
		}
		item, err := p.item(article, catalog)
		if err != nil {
			return fmt.Errorf("%s %d: %w", elemArticle, len(catalog.Items), err)
		}
		catalog.Items = append(catalog.Items, item)
		observability.FeedItemsParsed.Inc()
	default:
		p.Logger.Debug("skipping element", zap.String("element", el.Name.Local))
		return dec.Skip()
	}
	return nil
}

func (p *Parser) item(article feedArticle, catalog *model.Catalog) (model.Item, error) {
	item := make(model.Item, len(article.Fields)+1)

	for _, f := range article.Fields {
		name := f.XMLName.Local
		attr, ok := p.Registry.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
		}

		var labels *model.LabelSet
		if attr.Type == model.Category {
			labels = catalog.Categories[name]
			if f.Text != "" {
				labels.Add(f.Text)
			}
		}

		v, err := codec.Parse(f.Text, attr.Type, labels)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		item[name] = v
	}

	if _, ok := p.Registry.Lookup(model.AttrAlcoholPerKrona); ok {
		ratio, err := codec.DeriveAlcoholPerKrona(item)
		if err != nil {
			if nr, ok := item.Int(p.Registry.Primary().Identifier); ok {
				return nil, fmt.Errorf("%s %d: %w", p.Registry.Primary().Identifier, nr, err)
			}
			return nil, err
		}
		item[model.AttrAlcoholPerKrona] = ratio
	}

	return item, nil
}
