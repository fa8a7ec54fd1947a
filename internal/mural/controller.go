package mural

import (
	"context"
	"log/slog"
	"sync"

	"github.com/totegamma/hl3mural"
)

const PageSize = 60

// Fetcher is the submissions endpoint as seen by the mural.
type Fetcher interface {
	ListSubmissions(ctx context.Context, form string, page, perPage int) ([]hl3mural.Entry, error)
}

// Outcome tells the caller what a LoadMore call did.
type Outcome int

const (
	// OutcomeSkipped means a fetch was already in flight or the end was reached.
	OutcomeSkipped Outcome = iota
	OutcomeAppended
	OutcomeEnd
	// OutcomeSample means the fetch failed and sample entries were appended.
	OutcomeSample
	// OutcomeStale means a refresh happened while the fetch was in flight and
	// its result was dropped.
	OutcomeStale
)

// State is a snapshot of the controller.
type State struct {
	Page    int
	Loading bool
	End     bool
	Entries []hl3mural.Entry
}

// Controller owns pagination of one mural. At most one fetch is in flight per
// generation; Refresh starts a new generation.
type Controller struct {
	fetcher  Fetcher
	form     string
	pageSize int

	mu         sync.Mutex
	page       int
	loading    bool
	end        bool
	generation int
	entries    []hl3mural.Entry
	detail     *Detail
}

type Option func(*Controller)

func WithForm(form string) Option {
	return func(c *Controller) { c.form = form }
}

func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

func NewController(fetcher Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher:  fetcher,
		pageSize: PageSize,
		page:     1,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// LoadMore fetches the next page unless a fetch is in flight or the end has
// been reached. Fetch failures never surface: sample entries are shown instead.
func (c *Controller) LoadMore(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.loading || c.end {
		c.mu.Unlock()
		return OutcomeSkipped
	}
	c.loading = true
	page := c.page
	gen := c.generation
	c.mu.Unlock()

	outcome := OutcomeAppended
	entries, err := c.fetcher.ListSubmissions(ctx, c.form, page, c.pageSize)
	if err != nil {
		slog.WarnContext(
			ctx, "failed to fetch stories, showing samples",
			slog.Int("page", page),
			slog.String("error", err.Error()),
			slog.String("module", "mural"),
		)
		entries = SampleEntries()
		outcome = OutcomeSample
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return OutcomeStale
	}
	c.loading = false

	if len(entries) == 0 {
		c.end = true
		return OutcomeEnd
	}
	c.entries = append(c.entries, entries...)
	c.page++
	return outcome
}

// Refresh clears the mural and loads the first page again.
func (c *Controller) Refresh(ctx context.Context) Outcome {
	c.mu.Lock()
	c.entries = nil
	c.page = 1
	c.end = false
	c.loading = false
	c.detail = nil
	c.generation++
	c.mu.Unlock()

	return c.LoadMore(ctx)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]hl3mural.Entry, len(c.entries))
	copy(entries, c.entries)
	return State{
		Page:    c.page,
		Loading: c.loading,
		End:     c.end,
		Entries: entries,
	}
}

// Tiles maps the rendered entries to tile descriptors.
func (c *Controller) Tiles() []Tile {
	c.mu.Lock()
	entries := c.entries
	c.mu.Unlock()

	tiles := make([]Tile, 0, len(entries))
	for _, e := range entries {
		tiles = append(tiles, TileFor(e))
	}
	return tiles
}

// Open shows the detail view of the i-th rendered entry.
func (c *Controller) Open(i int) (Detail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.entries) {
		return Detail{}, false
	}
	d := DetailFor(c.entries[i])
	c.detail = &d
	return d, true
}

func (c *Controller) Close() {
	c.mu.Lock()
	c.detail = nil
	c.mu.Unlock()
}

// Detail returns the open detail view, if any.
func (c *Controller) Detail() (Detail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.detail == nil {
		return Detail{}, false
	}
	return *c.detail, true
}
