package client

import (
	"context"
	"sync"
	"time"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/models"
)

const defaultSearchDebounce = 300 * time.Millisecond

// SearchHandler receives the results of a completed search. Exactly one of
// results/err is meaningful.
type SearchHandler func(query string, results []models.StockSearchResult, err error)

// SearchController debounces market search input. Each SetQuery restarts the
// debounce timer; only the response for the newest query is delivered, so a
// slow response for an older query can never overwrite newer results.
type SearchController struct {
	client  interfaces.MarketDataClient
	delay   time.Duration
	handler SearchHandler
	logger  *common.Logger

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	closed bool
}

// SearchOption configures the controller
type SearchOption func(*SearchController)

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) SearchOption {
	return func(c *SearchController) {
		c.delay = d
	}
}

// WithSearchLogger sets the logger
func WithSearchLogger(logger *common.Logger) SearchOption {
	return func(c *SearchController) {
		c.logger = logger
	}
}

// NewSearchController creates a debounced search controller. handler is
// invoked from a background goroutine.
func NewSearchController(client interfaces.MarketDataClient, handler SearchHandler, opts ...SearchOption) *SearchController {
	c := &SearchController{
		client:  client,
		delay:   defaultSearchDebounce,
		handler: handler,
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetQuery registers new input. A pending timer is cancelled; an empty query
// delivers empty results immediately without hitting the API.
func (c *SearchController) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	gen := c.gen

	if query == "" {
		go c.deliver(gen, query, nil, nil)
		return
	}

	c.timer = time.AfterFunc(c.delay, func() {
		c.run(gen, query)
	})
}

// run executes the search and delivers results unless a newer query has
// superseded this one.
func (c *SearchController) run(gen uint64, query string) {
	results, err := c.client.Search(context.Background(), query)
	if err == nil {
		results = dedupeResults(results)
	}
	c.deliver(gen, query, results, err)
}

// deliver invokes the handler unless the controller is closed or a newer
// query has superseded gen. Empty-query deliveries go through the same
// check so a cleared input cannot land after newer results.
func (c *SearchController) deliver(gen uint64, query string, results []models.StockSearchResult, err error) {
	c.mu.Lock()
	stale := c.closed || gen != c.gen
	c.mu.Unlock()
	if stale {
		c.logger.Debug().Str("query", query).Msg("Dropping stale search response")
		return
	}

	c.handler(query, results, err)
}

// Select fetches quote details for a chosen search result.
func (c *SearchController) Select(ctx context.Context, result models.StockSearchResult) (*models.StockDetail, error) {
	return c.client.Quote(ctx, result.Symbol)
}

// Close cancels any pending search. Responses already in flight are dropped.
func (c *SearchController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// dedupeResults drops rows that repeat an already-seen symbol+exchange pair,
// keeping first occurrence order.
func dedupeResults(results []models.StockSearchResult) []models.StockSearchResult {
	seen := make(map[string]bool, len(results))
	out := make([]models.StockSearchResult, 0, len(results))
	for _, r := range results {
		key := r.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
