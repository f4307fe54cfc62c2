package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.DocsIndexedTotal.Add(3)
	m.DocsSkippedTotal.WithLabelValues("extraction").Inc()
	m.SearchQueriesTotal.WithLabelValues("results").Inc()

	if got := testutil.ToFloat64(m.DocsIndexedTotal); got != 3 {
		t.Errorf("docs_indexed_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.DocsSkippedTotal.WithLabelValues("extraction")); got != 1 {
		t.Errorf("docs_skipped_total{extraction} = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"docs_indexed_total", "docs_skipped_total", "search_queries_total"} {
		if !names[want] {
			t.Errorf("metric %s not gathered", want)
		}
	}
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}
