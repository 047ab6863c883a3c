package repository

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sortiment/internal/db"
	"sortiment/internal/feed"
	"sortiment/internal/model"
)

const fixtureFeed = `<?xml version="1.0" encoding="utf-8"?>
<artiklar>
  <skapad-tid>2019-05-02 00:07</skapad-tid>
  <artikel>
    <nr>54502</nr>
    <Artikelid>1000123</Artikelid>
    <Varnummer>545</Varnummer>
    <Namn>Tegnér &amp; Son Punsch</Namn>
    <Namn2></Namn2>
    <Prisinklmoms>199.00</Prisinklmoms>
    <Volymiml>750.00</Volymiml>
    <Saljstart>2015-09-01</Saljstart>
    <Utgått>0</Utgått>
    <Varugrupp>Punsch</Varugrupp>
    <Ursprunglandnamn>Sverige</Ursprunglandnamn>
    <Alkoholhalt>40.0%</Alkoholhalt>
    <Ekologisk>1</Ekologisk>
  </artikel>
  <artikel>
    <nr>1001</nr>
    <Namn>Pale Ale</Namn>
    <Prisinklmoms>16.90</Prisinklmoms>
    <Volymiml>330.00</Volymiml>
    <Varugrupp>Öl</Varugrupp>
    <Ursprunglandnamn>Sverige</Ursprunglandnamn>
    <Alkoholhalt>5.00%</Alkoholhalt>
  </artikel>
  <artikel>
    <nr>1002</nr>
    <Namn>Gin Tonic</Namn>
    <Prisinklmoms>29.90</Prisinklmoms>
    <Volymiml>330.00</Volymiml>
    <Varugrupp>Blanddrycker</Varugrupp>
    <Ursprunglandnamn>England</Ursprunglandnamn>
    <Alkoholhalt>7.50%</Alkoholhalt>
  </artikel>
  <artikel>
    <nr>545</nr>
    <Namn>Carlshamns Flaggpunsch</Namn>
    <Namn2>Original</Namn2>
    <Prisinklmoms>169.00</Prisinklmoms>
    <Volymiml>750.00</Volymiml>
    <Varugrupp>Punsch</Varugrupp>
    <Ursprunglandnamn>Sverige</Ursprunglandnamn>
    <Alkoholhalt>26.00%</Alkoholhalt>
  </artikel>
</artiklar>`

func parseFixture(t *testing.T, xml string) *model.Catalog {
	t.Helper()
	catalog, err := feed.NewParser(model.DefaultRegistry(), zaptest.NewLogger(t)).Parse(strings.NewReader(xml))
	require.NoError(t, err)
	return catalog
}

// loadedStore loads the fixture feed into a fresh SQLite file and returns
// its path.
func loadedStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sortiment.db")
	loader := NewLoader(path, model.DefaultRegistry(), zaptest.NewLogger(t))
	require.NoError(t, loader.Load(context.Background(), parseFixture(t, fixtureFeed)))
	return path
}

func openRepository(t *testing.T, dsn string) *ItemRepository {
	t.Helper()
	store, err := db.Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewItemRepository(store, model.DefaultRegistry())
}

func numbers(items []model.Item) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i], _ = item.Int(model.AttrNumber)
	}
	return out
}
