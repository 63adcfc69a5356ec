package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contrib-fyi/server/internal/github"
	"github.com/contrib-fyi/server/internal/models"
)

type fakeSearcher struct {
	mu      sync.Mutex
	params  []github.SearchParams
	tokens  []string
	respond func(ctx context.Context, params github.SearchParams) (models.SearchResponse, error)
}

func (f *fakeSearcher) SearchIssues(ctx context.Context, params github.SearchParams, token string) (models.SearchResponse, error) {
	f.mu.Lock()
	f.params = append(f.params, params)
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()
	if f.respond != nil {
		return f.respond(ctx, params)
	}
	return models.SearchResponse{}, nil
}

func (f *fakeSearcher) recorded() []github.SearchParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]github.SearchParams, len(f.params))
	copy(out, f.params)
	return out
}

func issueCreatedAt(id int64, created time.Time) models.RawIssue {
	return models.RawIssue{ID: id, Title: "issue", CreatedAt: created}
}

func TestFetch_NoLanguageSingleRequest(t *testing.T) {
	searcher := &fakeSearcher{respond: func(context.Context, github.SearchParams) (models.SearchResponse, error) {
		return models.SearchResponse{TotalCount: 5}, nil
	}}
	fetcher := NewRawIssueFetcher(searcher)

	res, err := fetcher.Fetch(context.Background(), models.SearchFilters{
		Label: []string{"help wanted"},
		Sort:  models.SortCreated,
	}, 2, "tok")
	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalCount)

	params := searcher.recorded()
	require.Len(t, params, 1)
	assert.Equal(t, `is:issue is:open label:"help wanted"`, params[0].Query)
	assert.Equal(t, models.SortCreated, params[0].Sort)
	assert.Equal(t, "desc", params[0].Order)
	assert.Equal(t, 20, params[0].PerPage)
	assert.Equal(t, 2, params[0].Page)
	assert.Equal(t, []string{"tok"}, searcher.tokens)
}

func TestFetch_SingleLanguageInQuery(t *testing.T) {
	searcher := &fakeSearcher{}
	fetcher := NewRawIssueFetcher(searcher)

	_, err := fetcher.Fetch(context.Background(), models.SearchFilters{
		Language: []string{"Go"},
	}, 1, "")
	require.NoError(t, err)

	params := searcher.recorded()
	require.Len(t, params, 1)
	assert.Equal(t, `is:issue is:open language:"Go"`, params[0].Query)
}

func TestFetch_MultiLanguageFansOutAndMerges(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	searcher := &fakeSearcher{respond: func(_ context.Context, params github.SearchParams) (models.SearchResponse, error) {
		if params.Query == `is:issue is:open language:"Go"` {
			return models.SearchResponse{
				TotalCount: 30,
				Items:      []models.RawIssue{issueCreatedAt(1, older), issueCreatedAt(2, newest)},
			}, nil
		}
		return models.SearchResponse{
			TotalCount:        12,
			IncompleteResults: true,
			Items:             []models.RawIssue{issueCreatedAt(3, newer)},
		}, nil
	}}
	fetcher := NewRawIssueFetcher(searcher)

	res, err := fetcher.Fetch(context.Background(), models.SearchFilters{
		Language: []string{"Go", "Rust"},
	}, 1, "")
	require.NoError(t, err)

	assert.Len(t, searcher.recorded(), 2)
	assert.Equal(t, 42, res.TotalCount)
	assert.True(t, res.IncompleteResults)

	// Merged and re-sorted newest first.
	require.Len(t, res.Items, 3)
	assert.Equal(t, int64(2), res.Items[0].ID)
	assert.Equal(t, int64(3), res.Items[1].ID)
	assert.Equal(t, int64(1), res.Items[2].ID)
}

func TestFetch_MultiLanguageFirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	searcher := &fakeSearcher{respond: func(_ context.Context, params github.SearchParams) (models.SearchResponse, error) {
		if params.Query == `is:issue is:open language:"Rust"` {
			return models.SearchResponse{}, boom
		}
		return models.SearchResponse{TotalCount: 1}, nil
	}}
	fetcher := NewRawIssueFetcher(searcher)

	_, err := fetcher.Fetch(context.Background(), models.SearchFilters{
		Language: []string{"Go", "Rust", "Zig"},
	}, 1, "")
	assert.ErrorIs(t, err, boom)
}

func TestFetch_MultiLanguageFailureNotMaskedByCancellation(t *testing.T) {
	// The Rust request fails outright while the Go request sits on the wire
	// until the failure cancels it. The caller must see the rate limit, not
	// the sibling's cancellation.
	searcher := &fakeSearcher{respond: func(ctx context.Context, params github.SearchParams) (models.SearchResponse, error) {
		if params.Query == `is:issue is:open language:"Rust"` {
			return models.SearchResponse{}, github.ErrRateLimited
		}
		<-ctx.Done()
		return models.SearchResponse{}, ctx.Err()
	}}
	fetcher := NewRawIssueFetcher(searcher)

	_, err := fetcher.Fetch(context.Background(), models.SearchFilters{
		Language: []string{"Go", "Rust"},
	}, 1, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, github.ErrRateLimited)
	assert.NotErrorIs(t, err, context.Canceled)
}

func TestFetch_FullFilterSetQuery(t *testing.T) {
	searcher := &fakeSearcher{}
	fetcher := NewRawIssueFetcher(searcher)

	_, err := fetcher.Fetch(context.Background(), models.SearchFilters{
		Label:           []string{"bug", "good first issue"},
		SearchQuery:     "memory leak",
		OnlyNoComments:  true,
		OnlyNoLinkedPRs: true,
		Language:        []string{"Go"},
	}, 1, "")
	require.NoError(t, err)

	params := searcher.recorded()
	require.Len(t, params, 1)
	assert.Equal(t,
		`is:issue is:open label:"bug","good first issue" comments:0 -linked:pr memory leak language:"Go"`,
		params[0].Query)
}
