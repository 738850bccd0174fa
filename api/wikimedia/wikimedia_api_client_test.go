package wikimedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageviews-server/api"
	"pageviews-server/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*WikimediaApiClient, *httptest.Server, *metrics.PrometheusSink, *prometheus.Registry) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	reg := prometheus.NewRegistry()
	sink := metrics.NewPrometheusSink(reg)
	client := NewWikimediaApiClient(api.NewHTTPClient("pageviews-test", time.Second), sink)
	return client, srv, sink, reg
}

func TestGetTopArticles(t *testing.T) {
	client, srv, _, reg := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2023/01/all-days" {
			t.Errorf("expected path /2023/01/all-days; got %s", r.URL.Path)
		}
		if got := r.Header.Get("User-Agent"); got != "pageviews-test" {
			t.Errorf("User-Agent = %q; want pageviews-test", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"articles":[{"article":"Article1","views":100},{"article":"Article2","views":200}]}]}`))
	})

	got := client.GetTopArticles(context.Background(), srv.URL+"/2023/01/all-days")

	assert.Empty(t, got.Error)
	require.Len(t, got.Items, 1)
	assert.Len(t, got.Items[0].Articles, 2)
	count, err := testutil.GatherAndCount(reg, "pageviews_upstream_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetArticleViews(t *testing.T) {
	client, srv, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Go/daily/2023010100/2023020100" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"items":[{"views":50,"timestamp":"2023010100"},{"views":60,"timestamp":"2023010200"}]}`))
	})

	got := client.GetArticleViews(context.Background(), srv.URL+"/Go/daily/2023010100/2023020100")

	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(60), got.Items[1].Views)
}

func TestFetch_NonOKStatusBecomesErrorPayload(t *testing.T) {
	client, srv, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title":"Not found."}`))
	})

	got := client.GetArticleViews(context.Background(), srv.URL+"/Missing/daily/2023010100/2023020100")

	assert.Equal(t, "Failed to fetch data, status code: 404", got.Error)
	assert.False(t, got.HasItems())
}

func TestFetch_MalformedPayloadHasNoItems(t *testing.T) {
	client, srv, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [`))
	})

	got := client.GetTopArticles(context.Background(), srv.URL+"/2023/01/01")

	assert.NotEmpty(t, got.Error)
	assert.False(t, got.HasItems())
}

func TestFetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	client := NewWikimediaApiClient(api.NewHTTPClient("pageviews-test", time.Second), nil)

	got := client.GetTopArticles(context.Background(), url+"/2023/01/01")

	assert.Contains(t, got.Error, "Failed to fetch data")
	assert.False(t, got.HasItems())
}

func TestWikimediaApiClientMock(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "../..")
	client := NewWikimediaApiClientMock()

	top := client.GetTopArticles(context.Background(), "ignored")
	require.True(t, top.HasItems())
	assert.NotEmpty(t, top.Items[0].Articles)

	views := client.GetArticleViews(context.Background(), "ignored")
	require.True(t, views.HasItems())
	assert.NotEmpty(t, views.Items[0].Timestamp)
}

func TestWikimediaApiClientMock_MissingFixture(t *testing.T) {
	t.Setenv("PROJECT_ROOT", t.TempDir())
	client := NewWikimediaApiClientMock()

	got := client.GetTopArticles(context.Background(), "ignored")

	assert.False(t, got.HasItems())
	assert.NotEmpty(t, got.Error)
}
