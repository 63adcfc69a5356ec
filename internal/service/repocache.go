package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/contrib-fyi/server/internal/models"
)

// ---- Collaborator contract -------------------------------------------------

// RepositoryFetcher performs the underlying repository metadata lookup.
type RepositoryFetcher interface {
	GetRepository(ctx context.Context, owner, repo, token string) (models.RawRepository, error)
}

// ---- Cache -----------------------------------------------------------------

// RepoCache memoizes repository lookups for the lifetime of the process.
// Entries are keyed by (lowercase owner/repo, token fingerprint): the same
// repository fetched with different credentials is cached separately because
// GitHub's answer can depend on who is asking. Concurrent misses for the same
// key are not coalesced; both fetch and both store the same idempotent value.
type RepoCache struct {
	mu      sync.Mutex
	entries map[string]models.RawRepository
	fetcher RepositoryFetcher
}

// NewRepoCache wraps the given fetcher with memoization.
func NewRepoCache(fetcher RepositoryFetcher) *RepoCache {
	return &RepoCache{
		entries: make(map[string]models.RawRepository),
		fetcher: fetcher,
	}
}

// fingerprintToken derives a short cache-key component from a token without
// storing the token itself. Empty tokens share the "anon" bucket.
func fingerprintToken(token string) string {
	if token == "" {
		return "anon"
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:12]
}

func cacheKey(owner, repo, token string) string {
	return strings.ToLower(owner+"/"+repo) + "#" + fingerprintToken(token)
}

// GetRepository returns the cached entry for (owner, repo, token) or performs
// the fetch and stores the result. Failed lookups are never cached.
func (c *RepoCache) GetRepository(ctx context.Context, owner, repo, token string) (models.RawRepository, error) {
	key := cacheKey(owner, repo, token)

	c.mu.Lock()
	if cached, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	repository, err := c.fetcher.GetRepository(ctx, owner, repo, token)
	if err != nil {
		return models.RawRepository{}, err
	}

	c.mu.Lock()
	c.entries[key] = repository
	c.mu.Unlock()

	return repository, nil
}

// Clear drops every entry. In-flight lookups are unaffected; they will store
// their results into the emptied map.
func (c *RepoCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]models.RawRepository)
	c.mu.Unlock()
}
