package github

import (
	"context"
	"log"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/contrib-fyi/server/internal/models"
)

// GraphQLClient answers batched questions the REST API cannot, currently just
// "how many pull requests reference each of these issues".
type GraphQLClient struct {
	endpoint string
}

// NewGraphQLClient targets api.github.com.
func NewGraphQLClient() *GraphQLClient {
	return &GraphQLClient{}
}

// NewGraphQLClientWithEndpoint targets a non-default GraphQL URL. Used by tests.
func NewGraphQLClientWithEndpoint(endpoint string) *GraphQLClient {
	return &GraphQLClient{endpoint: endpoint}
}

func (c *GraphQLClient) clientFor(ctx context.Context, token string) *githubv4.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, src)
	if c.endpoint != "" {
		return githubv4.NewEnterpriseClient(c.endpoint, httpClient)
	}
	return githubv4.NewClient(httpClient)
}

// FetchLinkedPRCounts returns, per issue id, how many cross-reference events
// on the issue's timeline originate from a pull request. The lookup is
// best-effort: any transport or query failure yields an empty map, and a
// missing key means "unknown", not "zero". Requires a token; the v4 API does
// not serve anonymous callers.
//
// The nodes(ids:) query returns results in request order, so counts are
// associated positionally. Absent nodes (e.g. an id that no longer resolves)
// are skipped.
func (c *GraphQLClient) FetchLinkedPRCounts(ctx context.Context, refs []models.IssueRef, token string) map[int64]int {
	counts := make(map[int64]int, len(refs))
	if len(refs) == 0 || token == "" {
		return counts
	}

	ids := make([]githubv4.ID, len(refs))
	for i, ref := range refs {
		ids[i] = githubv4.ID(ref.NodeID)
	}

	var q struct {
		Nodes []*struct {
			Issue struct {
				TimelineItems struct {
					Nodes []struct {
						CrossReferencedEvent struct {
							Source struct {
								TypeName string `graphql:"__typename"`
							}
						} `graphql:"... on CrossReferencedEvent"`
					}
				} `graphql:"timelineItems(first: 20, itemTypes: [CROSS_REFERENCED_EVENT])"`
			} `graphql:"... on Issue"`
		} `graphql:"nodes(ids: $ids)"`
	}

	variables := map[string]interface{}{"ids": ids}

	if err := c.clientFor(ctx, token).Query(ctx, &q, variables); err != nil {
		log.Printf("linked PR lookup failed: %v", err)
		return map[int64]int{}
	}

	for i, node := range q.Nodes {
		if node == nil || i >= len(refs) {
			continue
		}
		prCount := 0
		for _, item := range node.Issue.TimelineItems.Nodes {
			if item.CrossReferencedEvent.Source.TypeName == "PullRequest" {
				prCount++
			}
		}
		counts[refs[i].ID] = prCount
	}

	return counts
}
