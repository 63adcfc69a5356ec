package service

import (
	"github.com/contrib-fyi/server/internal/github"
	"github.com/contrib-fyi/server/internal/models"
)

// bodyPreviewLimit caps snapshot bodies; issue bodies can run to megabytes.
const bodyPreviewLimit = 2000

// ToSnapshot converts one raw API issue into its bounded snapshot form. The
// raw record's pull-request, assignee and milestone fields are deliberately
// not carried over.
func ToSnapshot(issue models.RawIssue) models.IssueSnapshot {
	body := issue.Body
	if runes := []rune(body); len(runes) > bodyPreviewLimit {
		body = string(runes[:bodyPreviewLimit])
	}

	labels := make([]models.SnapshotLabel, len(issue.Labels))
	for i, label := range issue.Labels {
		labels[i] = models.SnapshotLabel{
			ID:          label.ID,
			Name:        label.Name,
			Color:       label.Color,
			Description: label.Description,
		}
	}

	return models.IssueSnapshot{
		ID:            issue.ID,
		NodeID:        issue.NodeID,
		HTMLURL:       issue.HTMLURL,
		RepositoryURL: issue.RepositoryURL,
		Number:        issue.Number,
		State:         issue.State,
		Title:         issue.Title,
		Body:          body,
		User: models.SnapshotUser{
			ID:        issue.User.ID,
			Login:     issue.User.Login,
			AvatarURL: issue.User.AvatarURL,
			HTMLURL:   issue.User.HTMLURL,
		},
		Labels:    labels,
		Comments:  issue.Comments,
		CreatedAt: issue.CreatedAt,
		UpdatedAt: issue.UpdatedAt,
	}
}

// ToSnapshots converts a batch, preserving order.
func ToSnapshots(issues []models.RawIssue) []models.IssueSnapshot {
	snapshots := make([]models.IssueSnapshot, len(issues))
	for i, issue := range issues {
		snapshots[i] = ToSnapshot(issue)
	}
	return snapshots
}

// ToGraphQLInput projects snapshots down to the identity pairs the GraphQL
// layer re-queries by, preserving order.
func ToGraphQLInput(snapshots []models.IssueSnapshot) []models.IssueRef {
	refs := make([]models.IssueRef, len(snapshots))
	for i, snapshot := range snapshots {
		refs[i] = models.IssueRef{ID: snapshot.ID, NodeID: snapshot.NodeID}
	}
	return refs
}

// EnrichWithPRCounts attaches a linked-PR count to every snapshot whose id
// appears in counts. Snapshots absent from the map come back unchanged:
// a missing key means the count is unknown, not zero.
func EnrichWithPRCounts(snapshots []models.IssueSnapshot, counts map[int64]int) []models.IssueSnapshot {
	enriched := make([]models.IssueSnapshot, len(snapshots))
	for i, snapshot := range snapshots {
		if count, ok := counts[snapshot.ID]; ok {
			count := count
			snapshot.LinkedPRCount = &count
		}
		enriched[i] = snapshot
	}
	return enriched
}

// EnrichWithRepositories attaches repository metadata, keyed by full name, to
// snapshots that do not already carry one. The owner/repo is parsed from the
// issue's html_url; snapshots with no matching entry come back unchanged.
func EnrichWithRepositories(snapshots []models.IssueSnapshot, repositories map[string]models.RawRepository) []models.IssueSnapshot {
	enriched := make([]models.IssueSnapshot, len(snapshots))
	for i, snapshot := range snapshots {
		if snapshot.Repository == nil {
			if id, ok := github.ParseRepoFromIssueURL(snapshot.HTMLURL); ok {
				if repository, ok := repositories[id.FullName]; ok {
					repository := repository
					snapshot.Repository = &repository
				}
			}
		}
		enriched[i] = snapshot
	}
	return enriched
}
