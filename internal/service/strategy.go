package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/contrib-fyi/server/internal/github"
	"github.com/contrib-fyi/server/internal/models"
)

// ---- Collaborator contracts ------------------------------------------------

// RawFetcher retrieves one logical page of raw issues.
type RawFetcher interface {
	Fetch(ctx context.Context, filters models.SearchFilters, page int, token string) (models.SearchResponse, error)
}

// RepositoryProvider looks up repository metadata, typically through RepoCache.
type RepositoryProvider interface {
	GetRepository(ctx context.Context, owner, repo, token string) (models.RawRepository, error)
}

// LinkedPRCounter resolves linked pull-request counts for a batch of issues.
// Best-effort: implementations return an empty map on failure.
type LinkedPRCounter interface {
	FetchLinkedPRCounts(ctx context.Context, refs []models.IssueRef, token string) map[int64]int
}

// ---- Strategy selection ----------------------------------------------------

// StrategyKind names the two fetch-and-filter policies.
type StrategyKind int

const (
	// StrategyStandard performs a single fetch-transform-enrich pass.
	StrategyStandard StrategyKind = iota
	// StrategyStarFiltered iterates over pages, enriching with repository
	// stars and filtering client-side, because the search API cannot express
	// a star-count qualifier.
	StrategyStarFiltered
)

// SelectStrategy picks the policy for a filter set. A zero or absent minimum
// star count means no filtering.
func SelectStrategy(filters models.SearchFilters) StrategyKind {
	if filters.MinStars != nil && *filters.MinStars > 0 {
		return StrategyStarFiltered
	}
	return StrategyStandard
}

// ---- Runner ----------------------------------------------------------------

// SearchConfig holds the star-filter loop's tuning knobs. Both are policy
// values, not hard limits: attempts trade request volume against result
// quality, the target count decides when enough matches have accumulated.
type SearchConfig struct {
	StarFilterMaxAttempts int
	StarFilterTargetCount int
}

// DefaultSearchConfig returns the stock tuning.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		StarFilterMaxAttempts: 3,
		StarFilterTargetCount: 10,
	}
}

// SearchRunner executes one search invocation end to end: fetch, transform,
// enrich, filter. It is stateless across invocations; all per-search state
// lives on the stack of Run.
type SearchRunner struct {
	fetcher RawFetcher
	repos   RepositoryProvider
	prs     LinkedPRCounter
	cfg     SearchConfig
}

// NewSearchRunner wires the fetcher, the repository provider and the PR
// counter under the given tuning.
func NewSearchRunner(fetcher RawFetcher, repos RepositoryProvider, prs LinkedPRCounter, cfg SearchConfig) *SearchRunner {
	if cfg.StarFilterMaxAttempts <= 0 {
		cfg.StarFilterMaxAttempts = DefaultSearchConfig().StarFilterMaxAttempts
	}
	if cfg.StarFilterTargetCount <= 0 {
		cfg.StarFilterTargetCount = DefaultSearchConfig().StarFilterTargetCount
	}
	return &SearchRunner{fetcher: fetcher, repos: repos, prs: prs, cfg: cfg}
}

// Run dispatches to the policy selected for the filters.
func (r *SearchRunner) Run(ctx context.Context, filters models.SearchFilters, page int, token string) (models.SearchResult, error) {
	switch SelectStrategy(filters) {
	case StrategyStarFiltered:
		return r.runStarFiltered(ctx, filters, page, token)
	default:
		return r.runStandard(ctx, filters, page, token)
	}
}

// runStandard is one fetch-transform pass, with linked-PR enrichment when a
// token is present.
func (r *SearchRunner) runStandard(ctx context.Context, filters models.SearchFilters, page int, token string) (models.SearchResult, error) {
	res, err := r.fetcher.Fetch(ctx, filters, page, token)
	if err != nil {
		return models.SearchResult{}, err
	}

	snapshots := ToSnapshots(res.Items)
	if len(snapshots) > pageSize {
		snapshots = snapshots[:pageSize]
	}

	result := models.SearchResult{
		TotalCount:        res.TotalCount,
		IncompleteResults: res.IncompleteResults,
		Items:             snapshots,
	}

	if token == "" {
		return result, nil
	}

	counts := r.prs.FetchLinkedPRCounts(ctx, ToGraphQLInput(snapshots), token)
	result.Items = EnrichWithPRCounts(snapshots, counts)
	return result, nil
}

// runStarFiltered iterates: fetch a page, enrich with repository info, keep
// the issues whose repository clears the star threshold, and continue onto
// the next page until enough matches accumulate, the feed runs dry, or the
// attempt budget is spent.
func (r *SearchRunner) runStarFiltered(ctx context.Context, filters models.SearchFilters, page int, token string) (models.SearchResult, error) {
	minStars := 0
	if filters.MinStars != nil {
		minStars = *filters.MinStars
	}

	accumulated := []models.IssueSnapshot{}
	currentPage := page
	totalCount := 0

	for attempt := 0; attempt < r.cfg.StarFilterMaxAttempts; attempt++ {
		res, err := r.fetcher.Fetch(ctx, filters, currentPage, token)
		if err != nil {
			return models.SearchResult{}, err
		}
		if ctx.Err() != nil {
			break
		}

		// The first page's total stands in for the whole (unfiltered) search;
		// later attempts report totals for deeper pages and are discarded.
		if attempt == 0 {
			totalCount = res.TotalCount
		}

		withRepo := r.enrichWithRepoInfo(ctx, ToSnapshots(res.Items), token)
		if ctx.Err() != nil {
			break
		}

		for _, snapshot := range withRepo {
			if snapshot.Repository != nil && snapshot.Repository.StargazersCount >= minStars {
				accumulated = append(accumulated, snapshot)
			}
		}

		if len(accumulated) >= r.cfg.StarFilterTargetCount || len(res.Items) == 0 {
			break
		}
		currentPage++
	}

	if len(accumulated) > pageSize {
		accumulated = accumulated[:pageSize]
	}

	result := models.SearchResult{
		TotalCount:        totalCount,
		IncompleteResults: false,
		Items:             accumulated,
	}

	if token == "" || len(accumulated) == 0 {
		return result, nil
	}

	counts := r.prs.FetchLinkedPRCounts(ctx, ToGraphQLInput(accumulated), token)
	result.Items = EnrichWithPRCounts(accumulated, counts)
	return result, nil
}

// enrichWithRepoInfo attaches repository metadata to every snapshot that
// lacks one, fanning the lookups out in parallel. Lookup failures leave the
// snapshot unchanged; a rate-limit failure is logged apart from other errors
// so quota exhaustion is visible in diagnosis.
func (r *SearchRunner) enrichWithRepoInfo(ctx context.Context, snapshots []models.IssueSnapshot, token string) []models.IssueSnapshot {
	enriched := make([]models.IssueSnapshot, len(snapshots))
	copy(enriched, snapshots)

	var wg sync.WaitGroup
	for i := range enriched {
		if enriched[i].Repository != nil {
			continue
		}
		id, ok := github.ParseRepoFromIssueURL(enriched[i].HTMLURL)
		if !ok {
			continue
		}

		wg.Add(1)
		go func(i int, id github.RepoIdentifier) {
			defer wg.Done()
			repository, err := r.repos.GetRepository(ctx, id.Owner, id.Repo, token)
			if err != nil {
				if errors.Is(err, github.ErrRateLimited) {
					log.Printf("rate limit hit while enriching repository info for %s; skipping", id.FullName)
				} else {
					log.Printf("failed to fetch repository info for %s: %v", id.FullName, err)
				}
				return
			}
			enriched[i].Repository = &repository
		}(i, id)
	}
	wg.Wait()

	return enriched
}
