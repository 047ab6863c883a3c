package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	require.Equal(t, 31, reg.Len())
	assert.Equal(t, AttrNumber, reg.Primary().Identifier)
	assert.Equal(t, AttrAlcoholPerKrona, reg.Attributes()[reg.Len()-1].Identifier)

	for _, id := range []string{AttrName, AttrPrice, AttrVolume, AttrAlcohol, AttrGroup} {
		_, ok := reg.Lookup(id)
		assert.True(t, ok, id)
	}

	var categories []string
	for _, a := range reg.Categories() {
		categories = append(categories, a.Identifier)
	}
	assert.Equal(t, []string{
		"Varugrupp", "Typ", "Stil", "Forpackning", "Forslutning", "Ursprung",
		"Ursprunglandnamn", "Producent", "Leverantor", "Sortiment", "SortimentText", "EtisktEtikett",
	}, categories)

	assert.True(t, reg.IsCategory(AttrGroup))
	assert.False(t, reg.IsCategory(AttrName))
	assert.False(t, reg.IsCategory("bogus"))
}

func TestRegistry_SearchColumns(t *testing.T) {
	var exact, substring []string
	for _, a := range DefaultRegistry().Attributes() {
		switch a.Search {
		case SearchExact:
			exact = append(exact, a.Identifier)
		case SearchSubstring:
			substring = append(substring, a.Identifier)
		}
	}
	assert.Equal(t, []string{"nr", "Artikelid", "Varnummer"}, exact)
	assert.Equal(t, []string{"Namn", "Namn2"}, substring)
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry(nil)
	assert.ErrorIs(t, err, ErrEmptyRegistry)

	_, err = NewRegistry([]Attribute{{Identifier: "nr"}, {Identifier: "nr"}})
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)

	_, err = NewRegistry([]Attribute{{Identifier: ""}})
	assert.Error(t, err)
}

func TestRegistry_AttributesIsACopy(t *testing.T) {
	reg, err := NewRegistry([]Attribute{{Identifier: "nr", Type: Integer}})
	require.NoError(t, err)

	attrs := reg.Attributes()
	attrs[0].Identifier = "changed"
	assert.Equal(t, "nr", reg.Primary().Identifier)
}

func TestSemanticType(t *testing.T) {
	tests := []struct {
		typ        SemanticType
		name       string
		storage    StorageClass
		fixedPoint bool
	}{
		{Integer, "INTEGER", StorageInteger, false},
		{Text, "TEXT", StorageText, false},
		{Boolean, "BOOLEAN", StorageInteger, false},
		{Category, "CATEGORY", StorageInteger, false},
		{Date, "DATE", StorageText, false},
		{Percentage, "PERCENTAGE", StorageInteger, true},
		{Price, "PRICE", StorageInteger, true},
		{PricePerLiter, "PRICE_PER_LITER", StorageInteger, true},
		{AlcoholRatio, "ALCOHOL_PER_SEK", StorageInteger, true},
		{Volume, "VOLUME", StorageInteger, true},
		{URL, "URL", StorageNone, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.typ.String())
		assert.Equal(t, tt.storage, tt.typ.Storage(), tt.name)
		assert.Equal(t, tt.fixedPoint, tt.typ.FixedPoint(), tt.name)
	}
	assert.Equal(t, "SemanticType(99)", SemanticType(99).String())
}

func TestLabelSet(t *testing.T) {
	s := NewLabelSet()
	assert.Equal(t, []string{Unspecified}, s.Labels())

	assert.Equal(t, int64(1), s.Add("Öl"))
	assert.Equal(t, int64(2), s.Add("Punsch"))
	assert.Equal(t, int64(1), s.Add("Öl"))
	assert.Equal(t, int64(0), s.Add(Unspecified))

	assert.Equal(t, int64(2), s.Index("Punsch"))
	assert.Equal(t, int64(0), s.Index("never seen"))
	assert.Equal(t, 3, s.Len())

	labels := s.Labels()
	labels[1] = "changed"
	assert.Equal(t, []string{Unspecified, "Öl", "Punsch"}, s.Labels())
}

func TestItemInt(t *testing.T) {
	item := Item{"nr": int64(7), "Namn": "x", "Pant": nil}

	v, ok := item.Int("nr")
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)

	_, ok = item.Int("Namn")
	assert.False(t, ok)
	_, ok = item.Int("Pant")
	assert.False(t, ok)
	_, ok = item.Int("missing")
	assert.False(t, ok)
}
