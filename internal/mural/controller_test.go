package mural

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"

	"github.com/totegamma/hl3mural"
)

type request struct {
	form    string
	page    int
	perPage int
}

// scriptedFetcher answers each request with the next page of pages. When gate
// is set every call blocks until a value is sent on it.
type scriptedFetcher struct {
	mu       sync.Mutex
	requests []request
	pages    [][]hl3mural.Entry
	err      error
	started  chan struct{}
	gate     chan struct{}
}

func (f *scriptedFetcher) ListSubmissions(ctx context.Context, form string, page, perPage int) ([]hl3mural.Entry, error) {
	f.mu.Lock()
	f.requests = append(f.requests, request{form: form, page: page, perPage: perPage})
	n := len(f.requests)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}

	if f.err != nil {
		return nil, f.err
	}
	if n-1 < len(f.pages) {
		return f.pages[n-1], nil
	}
	return nil, nil
}

func (f *scriptedFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func entries(names ...string) []hl3mural.Entry {
	out := make([]hl3mural.Entry, 0, len(names))
	for _, n := range names {
		out = append(out, hl3mural.Entry{Data: hl3mural.StoryData{"name": n}})
	}
	return out
}

func TestLoadMoreAppendsAndAdvances(t *testing.T) {
	f := &scriptedFetcher{pages: [][]hl3mural.Entry{entries("a", "b"), entries("c")}}
	c := NewController(f, WithForm("guestbook"))

	if got := c.LoadMore(context.Background()); got != OutcomeAppended {
		t.Fatalf("expected appended got %v", got)
	}
	if got := c.LoadMore(context.Background()); got != OutcomeAppended {
		t.Fatalf("expected appended got %v", got)
	}

	st := c.State()
	if st.Page != 3 || len(st.Entries) != 3 || st.Loading || st.End {
		t.Fatalf("unexpected state %+v", st)
	}
	if f.requests[0] != (request{form: "guestbook", page: 1, perPage: PageSize}) || f.requests[1].page != 2 {
		t.Fatalf("unexpected requests %+v", f.requests)
	}
}

func TestLoadMoreSingleFlight(t *testing.T) {
	f := &scriptedFetcher{
		pages:   [][]hl3mural.Entry{entries("a")},
		started: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	c := NewController(f)

	done := make(chan Outcome)
	go func() { done <- c.LoadMore(context.Background()) }()
	<-f.started

	if got := c.LoadMore(context.Background()); got != OutcomeSkipped {
		t.Fatalf("expected second call to be skipped got %v", got)
	}
	if !c.State().Loading {
		t.Fatalf("expected loading while the fetch is in flight")
	}

	close(f.gate)
	if got := <-done; got != OutcomeAppended {
		t.Fatalf("expected appended got %v", got)
	}
	if f.calls() != 1 {
		t.Fatalf("expected exactly one request got %d", f.calls())
	}
}

func TestLoadMoreEndIsTerminalUntilRefresh(t *testing.T) {
	f := &scriptedFetcher{pages: [][]hl3mural.Entry{entries("a"), {}, entries("b")}}
	c := NewController(f)
	ctx := context.Background()

	c.LoadMore(ctx)
	if got := c.LoadMore(ctx); got != OutcomeEnd {
		t.Fatalf("expected end got %v", got)
	}
	if got := c.LoadMore(ctx); got != OutcomeSkipped {
		t.Fatalf("expected skipped after end got %v", got)
	}
	if f.calls() != 2 {
		t.Fatalf("expected no request after end got %d", f.calls())
	}
	if st := c.State(); !st.End || len(st.Entries) != 1 {
		t.Fatalf("unexpected state %+v", st)
	}

	if got := c.Refresh(ctx); got != OutcomeAppended {
		t.Fatalf("expected refresh to load got %v", got)
	}
	st := c.State()
	if st.End || st.Page != 2 || len(st.Entries) != 1 || st.Entries[0].Data.Name() != "b" {
		t.Fatalf("unexpected state after refresh %+v", st)
	}
	if f.requests[2].page != 1 {
		t.Fatalf("expected refresh to request page 1 got %d", f.requests[2].page)
	}
}

func TestRefreshResetsBeforeFirstLoadResolves(t *testing.T) {
	f := &scriptedFetcher{pages: [][]hl3mural.Entry{entries("a"), entries("b"), entries("c")}}
	c := NewController(f)
	ctx := context.Background()
	c.LoadMore(ctx)
	c.LoadMore(ctx)

	f.started = make(chan struct{}, 1)
	f.gate = make(chan struct{})

	done := make(chan Outcome)
	go func() { done <- c.Refresh(ctx) }()
	<-f.started

	st := c.State()
	if st.Page != 1 || len(st.Entries) != 0 || st.End {
		t.Fatalf("expected reset state while refreshing got %+v", st)
	}

	close(f.gate)
	<-done
}

func TestLoadMoreFallsBackToSamples(t *testing.T) {
	f := &scriptedFetcher{err: errors.New("connection refused")}
	c := NewController(f)

	if got := c.LoadMore(context.Background()); got != OutcomeSample {
		t.Fatalf("expected sample outcome got %v", got)
	}
	st := c.State()
	if len(st.Entries) != len(SampleEntries()) || st.Loading {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Entries[0].Data.Name() != "Alyx V." {
		t.Fatalf("expected sample entries got %+v", st.Entries)
	}
}

func TestStaleFetchIsDropped(t *testing.T) {
	f := &scriptedFetcher{
		pages:   [][]hl3mural.Entry{entries("old"), entries("new")},
		started: make(chan struct{}, 2),
		gate:    make(chan struct{}),
	}
	c := NewController(f)
	ctx := context.Background()

	first := make(chan Outcome)
	go func() { first <- c.LoadMore(ctx) }()
	<-f.started

	second := make(chan Outcome)
	go func() { second <- c.Refresh(ctx) }()
	<-f.started

	f.gate <- struct{}{}
	f.gate <- struct{}{}
	outcomes := map[Outcome]int{}
	outcomes[<-first]++
	outcomes[<-second]++

	if outcomes[OutcomeStale] != 1 || outcomes[OutcomeAppended] != 1 {
		t.Fatalf("expected one stale and one appended outcome got %v", outcomes)
	}
	if st := c.State(); len(st.Entries) != 1 || st.Loading {
		t.Fatalf("expected a single page after refresh got %+v", st)
	}
}

func TestSentinelMargin(t *testing.T) {
	f := &scriptedFetcher{pages: [][]hl3mural.Entry{entries("a")}}
	s := NewSentinel(NewController(f), DefaultMargin)

	if got := s.Observe(context.Background(), 401); got != OutcomeSkipped {
		t.Fatalf("expected far sentinel to be ignored got %v", got)
	}
	if f.calls() != 0 {
		t.Fatalf("expected no request")
	}
	if got := s.Observe(context.Background(), 400); got != OutcomeAppended {
		t.Fatalf("expected sentinel within margin to load got %v", got)
	}
	if got := s.Observe(context.Background(), -20); got != OutcomeEnd {
		t.Fatalf("expected visible sentinel to load got %v", got)
	}
}

func TestTilesAndDetail(t *testing.T) {
	f := &scriptedFetcher{pages: [][]hl3mural.Entry{{
		{Data: hl3mural.StoryData{"name": "", "story": "anonymous story"}},
		{Data: hl3mural.StoryData{
			"name":  "Barney C.",
			"story": "Pick up that can.",
			"imgur": " https://imgur.com/a/xyz789 ",
			"video": "https://youtu.be/dQw4w9WgXcQ",
		}},
	}}}
	c := NewController(f)
	c.LoadMore(context.Background())

	tiles := c.Tiles()
	if len(tiles) != 2 {
		t.Fatalf("expected 2 tiles got %d", len(tiles))
	}
	if tiles[0].Name != "Anonymous" || tiles[0].Action != ReadMoreLabel {
		t.Fatalf("unexpected tile %+v", tiles[0])
	}
	if tiles[1].Thumbnail != "https://i.imgur.com/xyz789.jpg" {
		t.Fatalf("unexpected thumbnail %s", tiles[1].Thumbnail)
	}

	if _, ok := c.Detail(); ok {
		t.Fatalf("expected no detail before open")
	}
	d, ok := c.Open(1)
	if !ok {
		t.Fatalf("expected detail")
	}
	if d.Name != "Barney C." || d.Story != "Pick up that can." || len(d.Embeds) != 2 {
		t.Fatalf("unexpected detail %+v", d)
	}
	if _, ok := c.Detail(); !ok {
		t.Fatalf("expected open detail")
	}
	c.Close()
	if _, ok := c.Detail(); ok {
		t.Fatalf("expected detail to be closed")
	}
	if _, ok := c.Open(5); ok {
		t.Fatalf("expected out of range open to fail")
	}
}
