package model

import (
	"errors"
	"fmt"
)

// SemanticType is the domain datatype of an attribute. It governs how raw
// feed text is parsed, how the value is stored and how it is displayed.
type SemanticType int

const (
	Integer SemanticType = iota
	Text
	Boolean
	Category
	Date
	Percentage
	Price
	PricePerLiter
	AlcoholRatio
	Volume
	URL
)

func (t SemanticType) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Text:
		return "TEXT"
	case Boolean:
		return "BOOLEAN"
	case Category:
		return "CATEGORY"
	case Date:
		return "DATE"
	case Percentage:
		return "PERCENTAGE"
	case Price:
		return "PRICE"
	case PricePerLiter:
		return "PRICE_PER_LITER"
	case AlcoholRatio:
		return "ALCOHOL_PER_SEK"
	case Volume:
		return "VOLUME"
	case URL:
		return "URL"
	default:
		return fmt.Sprintf("SemanticType(%d)", int(t))
	}
}

// StorageClass is the column representation of a semantic type.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageInteger
	StorageText
)

// Storage returns how values of t are persisted. URL is computed on read
// and never stored.
func (t SemanticType) Storage() StorageClass {
	switch t {
	case Integer, Boolean, Category, Percentage, Price, PricePerLiter, AlcoholRatio, Volume:
		return StorageInteger
	case Text, Date:
		return StorageText
	default:
		return StorageNone
	}
}

// FixedPoint reports whether stored values are decimals scaled by 100.
func (t SemanticType) FixedPoint() bool {
	switch t {
	case Percentage, Price, PricePerLiter, AlcoholRatio, Volume:
		return true
	}
	return false
}

// SearchMode marks the columns free-text search looks at.
type SearchMode int

const (
	SearchNone SearchMode = iota
	// SearchExact matches a purely numeric term by equality.
	SearchExact
	// SearchSubstring matches any term as a case-sensitive substring.
	SearchSubstring
)

type Attribute struct {
	Identifier string
	Type       SemanticType
	Name       string
	Visible    bool
	Search     SearchMode
}

var (
	ErrEmptyRegistry       = errors.New("registry has no attributes")
	ErrDuplicateIdentifier = errors.New("duplicate attribute identifier")
)

// Registry is the ordered, immutable set of attribute definitions. The
// first attribute is the primary key and the default sort column.
type Registry struct {
	attrs []Attribute
	index map[string]int
}

func NewRegistry(attrs []Attribute) (*Registry, error) {
	if len(attrs) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		attrs: make([]Attribute, len(attrs)),
		index: make(map[string]int, len(attrs)),
	}
	copy(r.attrs, attrs)

	for i, a := range r.attrs {
		if a.Identifier == "" {
			return nil, fmt.Errorf("attribute %d: empty identifier", i)
		}
		if _, ok := r.index[a.Identifier]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIdentifier, a.Identifier)
		}
		r.index[a.Identifier] = i
	}

	return r, nil
}

// Attributes returns a copy of the definitions in registry order.
func (r *Registry) Attributes() []Attribute {
	out := make([]Attribute, len(r.attrs))
	copy(out, r.attrs)
	return out
}

func (r *Registry) Len() int {
	return len(r.attrs)
}

// Lookup resolves an identifier. A miss means "unknown attribute", which
// most callers ignore.
func (r *Registry) Lookup(identifier string) (Attribute, bool) {
	i, ok := r.index[identifier]
	if !ok {
		return Attribute{}, false
	}
	return r.attrs[i], true
}

func (r *Registry) Primary() Attribute {
	return r.attrs[0]
}

// Categories returns the category attributes in registry order.
func (r *Registry) Categories() []Attribute {
	var out []Attribute
	for _, a := range r.attrs {
		if a.Type == Category {
			out = append(out, a)
		}
	}
	return out
}

// IsCategory reports whether identifier names a category attribute.
func (r *Registry) IsCategory(identifier string) bool {
	a, ok := r.Lookup(identifier)
	return ok && a.Type == Category
}
