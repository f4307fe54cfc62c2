package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/kafka"
)

type fakePublisher struct {
	mu      sync.Mutex
	batches [][]kafka.Event
	err     error
}

func (f *fakePublisher) PublishBatch(_ context.Context, events []kafka.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, events)
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func TestCollectorFlushesOnShutdown(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 100, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)

	c.Track(SearchEvent{Type: EventSearch, Query: "widget"})
	c.Track(SearchEvent{Type: EventZeroResult, Query: "nothing"})
	cancel()
	c.Close()

	if n := pub.count(); n != 2 {
		t.Fatalf("published %d events, want 2", n)
	}
	var ev SearchEvent
	data, _ := json.Marshal(pub.batches[0][0].Value)
	json.Unmarshal(data, &ev)
	if ev.Query != "widget" || pub.batches[0][0].Key != "widget" {
		t.Errorf("first event = %+v key %q", ev, pub.batches[0][0].Key)
	}
}

func TestCollectorFlushesFullBatch(t *testing.T) {
	pub := &fakePublisher{}
	c := NewCollector(pub, 2, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		c.Close()
	}()
	c.Start(ctx)

	c.Track(SearchEvent{Query: "a"})
	c.Track(SearchEvent{Query: "b"})

	deadline := time.Now().Add(2 * time.Second)
	for pub.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if pub.count() != 2 {
		t.Fatalf("full batch not flushed, published %d", pub.count())
	}
}

func TestCollectorRequeuesOnFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	c := NewCollector(pub, 2, time.Hour)
	for i := 0; i < 10; i++ {
		c.Track(SearchEvent{Query: "q"})
	}
	c.flush(context.Background())
	if n := c.BufferLen(); n != 6 {
		t.Errorf("buffer holds %d events after failed flush, want cap of 6", n)
	}
}

func TestAggregatorStats(t *testing.T) {
	a := NewAggregator()
	a.now = func() time.Time { return a.startTime.Add(2 * time.Minute) }

	for i, lat := range []int64{1, 2, 3, 4} {
		a.Track(SearchEvent{Query: "widget", TotalHits: 2, LatencyMs: lat, CacheHit: i%2 == 0})
	}
	a.Track(SearchEvent{Query: "zzz", TotalHits: 0, LatencyMs: 10})

	s := a.Stats()
	if s.TotalSearches != 5 || s.CacheHits != 2 || s.CacheMisses != 3 || s.ZeroResultCount != 1 {
		t.Errorf("counters = %+v", s)
	}
	if s.AvgLatencyMs != 4 {
		t.Errorf("avg latency = %v, want 4", s.AvgLatencyMs)
	}
	if s.P50LatencyMs != 3 || s.P99LatencyMs != 10 {
		t.Errorf("p50 = %d, p99 = %d", s.P50LatencyMs, s.P99LatencyMs)
	}
	if len(s.TopQueries) != 2 || s.TopQueries[0] != (QueryCount{"widget", 4}) {
		t.Errorf("top queries = %v", s.TopQueries)
	}
	if len(s.ZeroResultQueries) != 1 || s.ZeroResultQueries[0].Query != "zzz" {
		t.Errorf("zero result queries = %v", s.ZeroResultQueries)
	}
	if s.QueriesPerMinute != 2.5 {
		t.Errorf("qpm = %v, want 2.5", s.QueriesPerMinute)
	}
}

func TestMultiAndHandler(t *testing.T) {
	a1, a2 := NewAggregator(), NewAggregator()
	Multi{a1, a2}.Track(SearchEvent{Query: "x", TotalHits: 1})
	if a1.Stats().TotalSearches != 1 || a2.Stats().TotalSearches != 1 {
		t.Fatal("Multi did not fan out")
	}

	rec := httptest.NewRecorder()
	NewHandler(a1).Stats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats AggregatedStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalSearches != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
