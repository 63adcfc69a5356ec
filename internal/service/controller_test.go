package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrib-fyi/server/internal/models"
)

// ---- Fakes -------------------------------------------------------------------

type recordedRun struct {
	filters models.SearchFilters
	page    int
	token   string
}

// stubRunner answers every invocation immediately with a fixed outcome.
type stubRunner struct {
	mu     sync.Mutex
	runs   []recordedRun
	result models.SearchResult
	err    error
}

func (r *stubRunner) Run(ctx context.Context, filters models.SearchFilters, page int, token string) (models.SearchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, recordedRun{filters: filters, page: page, token: token})
	return r.result, r.err
}

func (r *stubRunner) runCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

func (r *stubRunner) lastRun() recordedRun {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs[len(r.runs)-1]
}

func (r *stubRunner) set(result models.SearchResult, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = result
	r.err = err
}

// gateRunner hands each invocation to the test, which decides when and with
// what to answer. It deliberately ignores context cancellation so tests can
// deliver late answers for runs the controller has already abandoned.
type gateRunner struct {
	calls chan *gateCall
}

type gateCall struct {
	filters models.SearchFilters
	page    int
	token   string
	reply   chan gateReply
}

type gateReply struct {
	result models.SearchResult
	err    error
}

func newGateRunner() *gateRunner {
	return &gateRunner{calls: make(chan *gateCall, 4)}
}

func (r *gateRunner) Run(ctx context.Context, filters models.SearchFilters, page int, token string) (models.SearchResult, error) {
	call := &gateCall{filters: filters, page: page, token: token, reply: make(chan gateReply, 1)}
	r.calls <- call
	rep := <-call.reply
	return rep.result, rep.err
}

func (r *gateRunner) next(t *testing.T) *gateCall {
	t.Helper()
	select {
	case call := <-r.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a runner invocation")
		return nil
	}
}

func bugFilters() models.SearchFilters {
	return models.SearchFilters{Label: []string{"bug"}, Sort: models.SortCreated}
}

// ---- Tests -------------------------------------------------------------------

func TestController_SetFiltersRunsSearch(t *testing.T) {
	runner := &stubRunner{result: models.SearchResult{TotalCount: 42}}
	c := NewSearchController(runner)

	c.SetFilters(bugFilters())
	c.WaitIdle()

	st := c.State()
	require.NotNil(t, st.Data)
	assert.Equal(t, 42, st.Data.TotalCount)
	assert.Empty(t, st.Err)
	assert.False(t, st.Loading)
	assert.Equal(t, 1, st.Page)

	last := runner.lastRun()
	assert.True(t, last.filters.Equal(bugFilters()))
	assert.Equal(t, 1, last.page)
}

func TestController_IdenticalFiltersAreANoOp(t *testing.T) {
	runner := &stubRunner{}
	c := NewSearchController(runner)

	c.SetFilters(bugFilters())
	c.WaitIdle()
	c.SetFilters(bugFilters())
	c.WaitIdle()

	assert.Equal(t, 1, runner.runCount())
}

func TestController_FilterChangeResetsPage(t *testing.T) {
	runner := &stubRunner{}
	c := NewSearchController(runner)

	c.SetFilters(bugFilters())
	c.WaitIdle()
	c.SetPage(3)
	c.WaitIdle()
	assert.Equal(t, 3, c.State().Page)
	assert.Equal(t, 3, runner.lastRun().page)

	next := bugFilters()
	next.Label = append(next.Label, "good first issue")
	c.SetFilters(next)
	c.WaitIdle()

	assert.Equal(t, 1, c.State().Page)
	assert.Equal(t, 1, runner.lastRun().page)
}

func TestController_SetPageClampsAndDedupes(t *testing.T) {
	runner := &stubRunner{}
	c := NewSearchController(runner)

	// Already on page 1, so a clamped page 0 changes nothing.
	c.SetPage(0)
	assert.Equal(t, 0, runner.runCount())

	c.SetPage(2)
	c.WaitIdle()
	assert.Equal(t, 1, runner.runCount())
	assert.Equal(t, 2, runner.lastRun().page)

	c.SetPage(2)
	assert.Equal(t, 1, runner.runCount())
}

func TestController_SetTokenReruns(t *testing.T) {
	runner := &stubRunner{}
	c := NewSearchController(runner)

	c.SetToken("tok")
	c.WaitIdle()
	require.Equal(t, 1, runner.runCount())
	assert.Equal(t, "tok", runner.lastRun().token)

	c.SetToken("tok")
	assert.Equal(t, 1, runner.runCount())
}

func TestController_ErrorThenRefreshRecovers(t *testing.T) {
	runner := &stubRunner{err: errors.New("boom")}
	c := NewSearchController(runner)

	c.SetFilters(bugFilters())
	c.WaitIdle()

	st := c.State()
	assert.Equal(t, "boom", st.Err)
	assert.Nil(t, st.Data)

	runner.set(models.SearchResult{TotalCount: 7}, nil)
	c.Refresh()
	c.WaitIdle()

	st = c.State()
	assert.Empty(t, st.Err)
	require.NotNil(t, st.Data)
	assert.Equal(t, 7, st.Data.TotalCount)
	assert.Equal(t, 2, runner.runCount())
}

type blankError struct{}

func (blankError) Error() string { return "" }

func TestController_EmptyErrorMessageGetsFallback(t *testing.T) {
	runner := &stubRunner{err: blankError{}}
	c := NewSearchController(runner)

	c.SetFilters(bugFilters())
	c.WaitIdle()

	assert.Equal(t, genericFetchError, c.State().Err)
}

func TestController_CancellationIsNotAnError(t *testing.T) {
	runner := &stubRunner{err: context.Canceled}
	c := NewSearchController(runner)

	c.SetFilters(bugFilters())

	assert.Never(t, func() bool {
		return c.State().Err != ""
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestController_CancellationStillSettles(t *testing.T) {
	runner := &stubRunner{err: context.Canceled}
	c := NewSearchController(runner)

	c.SetFilters(bugFilters())

	done := make(chan struct{})
	go func() {
		c.WaitIdle()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("controller never left the loading state")
	}

	st := c.State()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
	assert.Nil(t, st.Data)
}

func TestController_StaleRunNeverOverwrites(t *testing.T) {
	runner := newGateRunner()
	c := NewSearchController(runner)

	c.SetFilters(bugFilters())
	stale := runner.next(t)

	c.SetPage(2)
	current := runner.next(t)
	assert.Equal(t, 2, current.page)

	// The abandoned first run answers late; its result must be dropped.
	stale.reply <- gateReply{result: models.SearchResult{TotalCount: 100}}
	current.reply <- gateReply{result: models.SearchResult{TotalCount: 200}}
	c.WaitIdle()

	st := c.State()
	require.NotNil(t, st.Data)
	assert.Equal(t, 200, st.Data.TotalCount)
	assert.Equal(t, 2, st.Page)
}

func TestController_StopDiscardsInFlightRun(t *testing.T) {
	runner := newGateRunner()
	c := NewSearchController(runner)

	c.SetFilters(bugFilters())
	inflight := runner.next(t)

	c.Stop()
	assert.False(t, c.State().Loading)

	inflight.reply <- gateReply{result: models.SearchResult{TotalCount: 9}}

	assert.Never(t, func() bool {
		return c.State().Data != nil
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestController_ResetFilters(t *testing.T) {
	runner := &stubRunner{}
	c := NewSearchController(runner)

	c.SetFilters(bugFilters())
	c.WaitIdle()
	c.ResetFilters()
	c.WaitIdle()

	assert.True(t, c.Filters().Equal(models.DefaultFilters()))
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{0, 1},
		{1, 1},
		{20, 1},
		{21, 2},
		{500, 25},
		{999, 50},
		{1000, 50},
		{5000, 50},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.total), "total=%d", tc.total)
	}
}

func TestController_TotalPagesFromLastResult(t *testing.T) {
	runner := &stubRunner{result: models.SearchResult{TotalCount: 500}}
	c := NewSearchController(runner)

	assert.Equal(t, 1, c.TotalPages())

	c.SetFilters(bugFilters())
	c.WaitIdle()
	assert.Equal(t, 25, c.TotalPages())
}
