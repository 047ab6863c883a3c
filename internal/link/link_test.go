package link

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBuild(t *testing.T) {
	b := NewBuilder("")

	url, err := b.Build(54502, "Punsch", "Tegnér & Son Punsch")
	require.NoError(t, err)
	assert.Equal(t, "https://www.systembolaget.se/dryck/sprit/tegner-son-punsch-54502", url)

	url, err = b.Build(8629102, "Tequila och Mezcal", "Los Tres Toños")
	require.NoError(t, err)
	assert.Equal(t, "https://www.systembolaget.se/dryck/sprit/los-tres-tonos-8629102", url)

	url, err = b.Build(7, "Rött vin", "Château Öster")
	require.NoError(t, err)
	assert.Equal(t, "https://www.systembolaget.se/dryck/roda-viner/chateau-oster-7", url)
}

func TestBuild_CustomHost(t *testing.T) {
	url, err := NewBuilder("example.test").Build(1, "Öl", "Pale Ale")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/dryck/ol/pale-ale-1", url)
}

func TestBuild_UnknownCategory(t *testing.T) {
	_, err := NewBuilder("").Build(1, "Ospecificerad", "Vatten")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Tegnér & Son Punsch": "tegner-son-punsch",
		"A  -  B":             "a-b",
		"Mäster's No. 1":      "masters-no-1",
		"":                    "",
		"Crème Brûlée":        "creme-brulee",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slug(in), "Slug(%q)", in)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder("")
	categories := make([]string, 0, len(segments))
	for c := range segments {
		categories = append(categories, c)
	}

	rapid.Check(t, func(t *rapid.T) {
		id := rapid.Int64Range(1, 99_999_999).Draw(t, "id")
		category := rapid.SampledFrom(categories).Draw(t, "category")
		name := rapid.String().Draw(t, "name")

		first, err := b.Build(id, category, name)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		second, _ := b.Build(id, category, name)
		if first != second {
			t.Fatalf("not deterministic: %q != %q", first, second)
		}
		if strings.Contains(Slug(name), "--") {
			t.Fatalf("slug of %q has a hyphen run", name)
		}
		for _, r := range first {
			if r > 127 {
				t.Fatalf("non-ASCII rune in %q", first)
			}
		}
	})
}
