package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/contrib-fyi/server/internal/github"
	"github.com/contrib-fyi/server/internal/models"
)

// pageSize is the number of issues requested per search page; the upstream
// search API refuses to paginate past maxSearchResults total results.
const (
	pageSize         = 20
	maxSearchResults = 1000
)

// ---- Collaborator contract -------------------------------------------------

// IssueSearcher executes one search request against the issue search endpoint.
type IssueSearcher interface {
	SearchIssues(ctx context.Context, params github.SearchParams, token string) (models.SearchResponse, error)
}

// ---- Fetcher ---------------------------------------------------------------

// RawIssueFetcher turns a filter set and page number into the raw search
// call(s). With zero or one selected language it issues a single request.
// With several it fans out one request per language: OR-ing multiple
// language: qualifiers makes the search API favor the last one, so symmetric
// per-language queries are the only way to get unbiased results.
type RawIssueFetcher struct {
	searcher IssueSearcher
}

// NewRawIssueFetcher wires the underlying search call.
func NewRawIssueFetcher(searcher IssueSearcher) *RawIssueFetcher {
	return &RawIssueFetcher{searcher: searcher}
}

// Fetch retrieves one logical page of raw issues for the given filters.
func (f *RawIssueFetcher) Fetch(ctx context.Context, filters models.SearchFilters, page int, token string) (models.SearchResponse, error) {
	base := github.NewIssueQuery().
		WithBaseFilters().
		WithLabels(filters.Label).
		WithNoComments(filters.OnlyNoComments).
		WithNoLinkedPRs(filters.OnlyNoLinkedPRs).
		WithSearchQuery(filters.SearchQuery)

	runSearch := func(ctx context.Context, language string) (models.SearchResponse, error) {
		params := github.SearchParams{
			Query:   base.Clone().WithLanguage(language).Build(),
			Sort:    filters.Sort,
			Order:   "desc",
			PerPage: pageSize,
			Page:    page,
		}
		return f.searcher.SearchIssues(ctx, params, token)
	}

	if len(filters.Language) <= 1 {
		language := ""
		if len(filters.Language) == 1 {
			language = filters.Language[0]
		}
		return runSearch(ctx, language)
	}

	// One request per language, in parallel. The first failure cancels the
	// siblings and fails the whole fetch.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]models.SearchResponse, len(filters.Language))
	errs := make([]error, len(filters.Language))

	var wg sync.WaitGroup
	for i, language := range filters.Language {
		wg.Add(1)
		go func(i int, language string) {
			defer wg.Done()
			res, err := runSearch(ctx, language)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = res
		}(i, language)
	}
	wg.Wait()

	// The failing request cancels its siblings, so errs also holds their
	// resulting cancellations. Report the root cause, not the fallout; a
	// cancellation surfaces only when no request failed on its own.
	var firstErr error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, context.Canceled) {
			firstErr = err
			break
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return models.SearchResponse{}, firstErr
	}

	var merged models.SearchResponse
	for _, res := range results {
		merged.TotalCount += res.TotalCount
		merged.Items = append(merged.Items, res.Items...)
		if res.IncompleteResults {
			merged.IncompleteResults = true
		}
	}

	// The merged page is re-sorted by creation time even when the active sort
	// is updated or comments. Known approximation.
	sort.SliceStable(merged.Items, func(a, b int) bool {
		return merged.Items[a].CreatedAt.After(merged.Items[b].CreatedAt)
	})

	return merged, nil
}
