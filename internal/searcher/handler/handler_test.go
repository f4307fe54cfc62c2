package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/searcher/stopwords"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/metrics"
)

func newSearcher(t *testing.T) *searcher.Searcher {
	t.Helper()
	b := indexer.NewBuilder(config.BuilderConfig{Workers: 1, TitleWeight: 10}, config.IndexConfig{}, tokenizer.New(), nil)
	docs := [][3]string{
		{"Widget", "http://x/a", "widget gadget widget"},
		{"Gadget", "http://x/b", "gadget widget"},
		{"Sprocket", "http://x/c", "sprocket only"},
	}
	for _, d := range docs {
		if _, err := b.AddDocument(d[0], d[1], d[2]); err != nil {
			t.Fatal(err)
		}
	}
	return searcher.New(b.Index(), tokenizer.New(), stopwords.Default())
}

func newMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func get(t *testing.T, mux http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestSearcherEndpoint(t *testing.T) {
	mux := newMux(New(newSearcher(t), Options{}))
	rec := get(t, mux, "/searcher?query=widget")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var results []searcher.Result
	if err := json.NewDecoder(rec.Body).Decode(&results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].Title != "Widget" {
		t.Errorf("results = %+v", results)
	}
}

func TestSearcherEndpointEmptyQuery(t *testing.T) {
	mux := newMux(New(newSearcher(t), Options{}))
	for _, url := range []string{"/searcher", "/searcher?query=", "/api/v1/search?q=%20"} {
		rec := get(t, mux, url)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", url, rec.Code)
		}
	}
	rec := get(t, mux, "/searcher")
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("empty query body = %q, want []", body)
	}
}

func TestSearchEndpointLimit(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	agg := analytics.NewAggregator()
	mux := newMux(New(newSearcher(t), Options{Metrics: m, Tracker: agg, DefaultLimit: 10, MaxResults: 50}))

	rec := get(t, mux, "/api/v1/search?q=widget&limit=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp searcher.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || len(resp.Results) != 1 || resp.Query != "widget" {
		t.Errorf("resp = %+v", resp)
	}

	get(t, mux, "/api/v1/search?q=nomatch")
	if got := testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("results")); got != 1 {
		t.Errorf("results outcome = %v", got)
	}
	if got := testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("zero_result")); got != 1 {
		t.Errorf("zero_result outcome = %v", got)
	}
	if s := agg.Stats(); s.TotalSearches != 2 || s.ZeroResultCount != 1 {
		t.Errorf("analytics = %+v", s)
	}
}

func TestSearchEndpointBadLimit(t *testing.T) {
	mux := newMux(New(newSearcher(t), Options{}))
	for _, l := range []string{"0", "-2", "abc"} {
		rec := get(t, mux, "/api/v1/search?q=widget&limit="+l)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d", l, rec.Code)
		}
	}
}

type failingEngine struct{ err error }

func (f failingEngine) Execute(string, int) (*searcher.Response, error) { return nil, f.err }

func TestSearchErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad bytes", apperrors.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("resolving: %w", apperrors.ErrDocumentNotFound), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		mux := newMux(New(failingEngine{tt.err}, Options{}))
		rec := get(t, mux, "/api/v1/search?q=widget")
		if rec.Code != tt.want {
			t.Errorf("err %v: status = %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}

func TestCacheEndpointsDisabled(t *testing.T) {
	mux := newMux(New(newSearcher(t), Options{}))
	if rec := get(t, mux, "/api/v1/cache/stats"); rec.Code != http.StatusOK {
		t.Errorf("stats status = %d", rec.Code)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cache/invalidate", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("invalidate status = %d", rec.Code)
	}
}
