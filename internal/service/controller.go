package service

import (
	"context"
	"errors"
	"sync"

	"github.com/contrib-fyi/server/internal/models"
)

// genericFetchError stands in when a failed run produced no usable message.
const genericFetchError = "failed to fetch issues"

// ---- Collaborator contract -------------------------------------------------

// StrategyRunner executes one search invocation.
type StrategyRunner interface {
	Run(ctx context.Context, filters models.SearchFilters, page int, token string) (models.SearchResult, error)
}

// ---- Controller ------------------------------------------------------------

// ControllerState is an observable snapshot of the controller's outputs.
type ControllerState struct {
	Data    *models.SearchResult
	Loading bool
	Err     string
	Page    int
}

// SearchController is the stateful driver above the strategy layer. Every
// input change (filters, page, token, refresh) cancels the in-flight run and
// starts a fresh one; a run commits its result only while it is still the
// newest, so a slow stale response can never clobber newer state. Filter
// changes always reset pagination to page 1.
type SearchController struct {
	runner StrategyRunner

	mu         sync.Mutex
	cond       *sync.Cond
	filters    models.SearchFilters
	token      string
	page       int
	refreshKey int
	generation int
	cancel     context.CancelFunc
	data       *models.SearchResult
	loading    bool
	errMsg     string
}

// NewSearchController returns an idle controller holding the default filters.
// No fetch runs until the first input change or Refresh call.
func NewSearchController(runner StrategyRunner) *SearchController {
	c := &SearchController{
		runner:  runner,
		filters: models.DefaultFilters(),
		page:    1,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// SetFilters installs a new filter set. A changed filter set restarts
// pagination at page 1; an identical one is a no-op.
func (c *SearchController) SetFilters(filters models.SearchFilters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filters.Equal(filters) {
		return
	}
	c.filters = filters
	c.page = 1
	c.restartLocked()
}

// ResetFilters restores the default filter set.
func (c *SearchController) ResetFilters() {
	c.SetFilters(models.DefaultFilters())
}

// SetPage moves to another page of the current search. Page numbers below 1
// clamp to 1; setting the current page again is a no-op.
func (c *SearchController) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page == page {
		return
	}
	c.page = page
	c.restartLocked()
}

// SetToken installs a new credential and re-runs the current search with it.
func (c *SearchController) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == token {
		return
	}
	c.token = token
	c.restartLocked()
}

// Refresh re-runs the exact same invocation: same filters, same page. This is
// the manual retry surface after an error.
func (c *SearchController) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshKey++
	c.restartLocked()
}

// Stop cancels any in-flight run and leaves the controller idle.
func (c *SearchController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.loading = false
	c.cond.Broadcast()
}

// restartLocked cancels the previous run and launches the next. Caller holds mu.
func (c *SearchController) restartLocked() {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.generation++
	c.loading = true
	c.errMsg = ""

	go c.run(ctx, c.generation, c.filters, c.page, c.token)
}

// run executes one invocation and commits the outcome if still current.
func (c *SearchController) run(ctx context.Context, generation int, filters models.SearchFilters, page int, token string) {
	result, err := c.runner.Run(ctx, filters, page, token)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A newer invocation owns the state now; drop everything on the floor.
	if generation != c.generation || ctx.Err() != nil {
		return
	}

	switch {
	case err == nil:
		c.data = &result
		c.errMsg = ""
	case errors.Is(err, context.Canceled):
		// Cancellation is not an error the user should see; the run still
		// settles so the controller never reports loading forever.
	default:
		msg := err.Error()
		if msg == "" {
			msg = genericFetchError
		}
		c.errMsg = msg
	}

	c.loading = false
	c.cond.Broadcast()
}

// State returns the current observable state.
func (c *SearchController) State() ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ControllerState{
		Data:    c.data,
		Loading: c.loading,
		Err:     c.errMsg,
		Page:    c.page,
	}
}

// Filters returns the active filter set.
func (c *SearchController) Filters() models.SearchFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// TotalPages derives the page count from the last result. The search API
// refuses to paginate past 1000 results, so larger totals are capped first.
func (c *SearchController) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		return 1
	}
	return TotalPages(c.data.TotalCount)
}

// TotalPages is the shared page-count derivation: ceil of the capped total
// over the page size, floored at one page.
func TotalPages(totalCount int) int {
	if totalCount > maxSearchResults {
		totalCount = maxSearchResults
	}
	pages := (totalCount + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// WaitIdle blocks until no run is in flight. Intended for embedding callers
// and tests that need a settled state to observe.
func (c *SearchController) WaitIdle() {
	c.mu.Lock()
	for c.loading {
		c.cond.Wait()
	}
	c.mu.Unlock()
}
