package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/domain"
)

func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestClient_Categories(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /products/categories": writeJSON(`[{"slug":"beauty","name":"Beauty","url":"https://x/beauty"},{"slug":"home-decoration","name":"Home Decoration"}]`),
	})

	cats, err := NewClient(srv.URL).Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, domain.Category{Slug: "beauty", Name: "Beauty", URL: "https://x/beauty"}, cats[0])
	assert.Equal(t, "home-decoration", cats[1].Slug)
}

func TestClient_CategoriesLegacyStrings(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /products/categories": writeJSON(`["smartphones","laptops"]`),
	})

	cats, err := NewClient(srv.URL).Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{Slug: "smartphones", Name: "smartphones"},
		{Slug: "laptops", Name: "laptops"},
	}, cats)
}

func TestClient_Products(t *testing.T) {
	var gotLimit string
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /products": func(w http.ResponseWriter, r *http.Request) {
			gotLimit = r.URL.Query().Get("limit")
			writeJSON(`{"products":[{"id":1,"title":"A","price":10,"images":["a.jpg"]},{"id":2,"title":"B","price":5.5,"images":["b.jpg"]}],"total":2}`)(w, r)
		},
	})

	products, err := NewClient(srv.URL).Products(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, "1000", gotLimit)
	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 5.5, products[1].Price)
}

func TestClient_ProductsMissingField(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /products": writeJSON(`{"total":0}`),
	})

	_, err := NewClient(srv.URL).Products(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, domain.IsFetchError(err))
}

func TestClient_ProductsMalformed(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /products": writeJSON(`{"products": [`),
	})

	_, err := NewClient(srv.URL).Products(context.Background(), 10)
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, resourceProducts, fe.Resource)
}

func TestClient_ServerError(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /products/categories": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "down", http.StatusInternalServerError)
		},
	})

	_, err := NewClient(srv.URL).Categories(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsFetchError(err))
}

func TestClient_Product(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /products/{id}": func(w http.ResponseWriter, r *http.Request) {
			if r.PathValue("id") != "7" {
				http.NotFound(w, r)
				return
			}
			writeJSON(`{"id":7,"title":"Lamp","price":19.99,"stock":3,"images":["l.jpg"],"reviews":[{"rating":5,"comment":"ok"}]}`)(w, r)
		},
	})
	c := NewClient(srv.URL)

	p, err := c.Product(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", p.Title)
	assert.Len(t, p.Reviews, 1)

	_, err = c.Product(context.Background(), 8)
	require.Error(t, err)
	assert.True(t, domain.IsFetchError(err))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /products/categories": func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		},
	})
	defer close(release)

	_, err := NewClient(srv.URL, WithTimeout(50*time.Millisecond)).Categories(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsFetchError(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_RecordsSpans(t *testing.T) {
	srv := newTestServer(t, map[string]http.HandlerFunc{
		"GET /products/categories": writeJSON(`["beauty"]`),
	})

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, err := NewClient(srv.URL, WithTracerProvider(tp)).Categories(context.Background())
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())
	assert.True(t, spans[0].SpanContext().IsValid())
}
