package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sortiment/internal/db"
	"sortiment/internal/feed"
	"sortiment/internal/link"
	"sortiment/internal/listing"
	"sortiment/internal/model"
	"sortiment/internal/observability"
	"sortiment/internal/repository"
)

type fakeCatalog struct {
	params repository.ListParams
	err    error
}

func (f *fakeCatalog) ListItems(_ context.Context, p repository.ListParams) (*listing.Page, error) {
	f.params = p
	if f.err != nil {
		return nil, f.err
	}
	return &listing.Page{Total: 1, Rows: []map[string]any{{"nr": int64(1)}}}, nil
}

func (f *fakeCatalog) Categories(_ context.Context, identifier string) (map[int64]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if identifier != model.AttrGroup {
		return map[int64]string{}, nil
	}
	return map[int64]string{0: model.Unspecified, 1: "Öl"}, nil
}

func (f *fakeCatalog) Columns() []listing.Column {
	return listing.NewService("", model.DefaultRegistry(), nil, nil).Columns()
}

func serve(t *testing.T, e *echo.Echo, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetItems_Params(t *testing.T) {
	filter := url.QueryEscape(`{"Varugrupp": "Öl", "Typ": 2}`)

	tests := []struct {
		name   string
		target string
		want   repository.ListParams
	}{
		{"defaults", "/items", repository.ListParams{Offset: 0, Limit: -1}},
		{"all params", "/items?offset=10&limit=25&sort=Namn&order=desc&search=Gin&filter=" + filter,
			repository.ListParams{Offset: 10, Limit: 25, Sort: "Namn", Order: "desc", Search: "Gin",
				Filters: map[string]any{"Varugrupp": "Öl", "Typ": float64(2)}}},
		{"bad integers default", "/items?offset=x&limit=1.5", repository.ListParams{Offset: 0, Limit: -1}},
		{"malformed filter", "/items?filter=" + url.QueryEscape(`{"Varugrupp":`), repository.ListParams{Limit: -1}},
		{"non-object filter", "/items?filter=" + url.QueryEscape(`[1,2]`), repository.ListParams{Limit: -1}},
		{"null filter", "/items?filter=null", repository.ListParams{Limit: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCatalog{}
			rec := serve(t, NewServer(fake, zaptest.NewLogger(t)), tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, fake.params)
			assert.JSONEq(t, `{"total": 1, "rows": [{"nr": 1}]}`, rec.Body.String())
		})
	}
}

func TestGetItems_StoreError(t *testing.T) {
	fake := &fakeCatalog{err: db.Wrap("open", errors.New("no such file"))}
	rec := serve(t, NewServer(fake, zaptest.NewLogger(t)), "/items")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "store unavailable"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestGetCategory(t *testing.T) {
	e := NewServer(&fakeCatalog{}, zaptest.NewLogger(t))

	rec := serve(t, e, "/category/Varugrupp")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"0": "Ospecificerad", "1": "Öl"}`, rec.Body.String())

	rec = serve(t, e, "/category/Namn")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())

	rec = serve(t, NewServer(&fakeCatalog{err: db.ErrStore}, nil), "/category/Varugrupp")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetIndex(t *testing.T) {
	rec := serve(t, NewServer(&fakeCatalog{}, zaptest.NewLogger(t)), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML))

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	headers := doc.Find("table#items th")
	require.Equal(t, model.DefaultRegistry().Len()+1, headers.Length())

	first := headers.First()
	assert.Equal(t, "nr", first.AttrOr("data-field", ""))
	assert.Equal(t, "false", first.AttrOr("data-visible", ""))
	assert.Equal(t, "INTEGER", first.AttrOr("data-type", ""))
	assert.Equal(t, "Nummer", first.Text())

	price := doc.Find(`th[data-field="Prisinklmoms"]`)
	assert.Equal(t, "true", price.AttrOr("data-visible", ""))
	assert.Equal(t, "PRICE", price.AttrOr("data-type", ""))

	group := doc.Find(`th[data-field="Varugrupp"]`)
	assert.Equal(t, "CATEGORY", group.AttrOr("data-type", ""))
	assert.Equal(t, "url:category/Varugrupp", group.AttrOr("data-filter-data", ""))

	last := headers.Last()
	assert.Equal(t, "url", last.AttrOr("data-field", ""))
	assert.Equal(t, "URL", last.AttrOr("data-type", ""))
	assert.Equal(t, "true", last.AttrOr("data-visible", ""))
	assert.Equal(t, "Säljstart", doc.Find(`th[data-field="Saljstart"]`).Text())
}

func TestMetrics(t *testing.T) {
	e := NewServer(&fakeCatalog{}, zaptest.NewLogger(t))
	counter := observability.HTTPRequests.WithLabelValues(http.MethodGet, "/category/:identifier", "200")
	before := testutil.ToFloat64(counter)

	serve(t, e, "/category/Varugrupp")
	serve(t, e, "/category/Typ")
	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	rec := serve(t, e, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sortiment_http_requests_total")
}

func TestServer_EndToEnd(t *testing.T) {
	catalog, err := feed.NewParser(model.DefaultRegistry(), zaptest.NewLogger(t)).Parse(strings.NewReader(`<artiklar>
		<artikel><nr>54502</nr><Namn>Tegnér &amp; Son Punsch</Namn><Prisinklmoms>199.00</Prisinklmoms>
		<Volymiml>750.00</Volymiml><Varugrupp>Punsch</Varugrupp><Alkoholhalt>40.0%</Alkoholhalt></artikel>
	</artiklar>`))
	require.NoError(t, err)

	dsn := filepath.Join(t.TempDir(), "sortiment.db")
	require.NoError(t, repository.NewLoader(dsn, model.DefaultRegistry(), zaptest.NewLogger(t)).Load(context.Background(), catalog))

	svc := listing.NewService(dsn, model.DefaultRegistry(), link.NewBuilder(""), zaptest.NewLogger(t))
	rec := serve(t, NewServer(svc, zaptest.NewLogger(t)), "/items?limit=10&filter="+url.QueryEscape(`{"Varugrupp": "Punsch"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Total int64            `json:"total"`
		Rows  []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "199,00 kr", page.Rows[0][model.AttrPrice])
	assert.Equal(t, "1,51 ml/kr", page.Rows[0][model.AttrAlcoholPerKrona])
	assert.Equal(t, "https://www.systembolaget.se/dryck/sprit/tegner-son-punsch-54502", page.Rows[0]["url"])
}
