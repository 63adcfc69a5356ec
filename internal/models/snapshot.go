package models

import "time"

// SnapshotUser is the bounded author view carried on a snapshot.
type SnapshotUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// SnapshotLabel preserves a label's identity and display fields in source order.
type SnapshotLabel struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// IssueSnapshot is the canonical, UI-safe issue representation. Body is capped
// at 2000 characters. Repository and LinkedPRCount are best-effort enrichments
// attached after the primary fetch; nil means "unknown", never "zero".
type IssueSnapshot struct {
	ID            int64           `json:"id" bson:"id"`
	NodeID        string          `json:"node_id" bson:"node_id"`
	HTMLURL       string          `json:"html_url" bson:"html_url"`
	RepositoryURL string          `json:"repository_url" bson:"repository_url"`
	Number        int             `json:"number" bson:"number"`
	State         string          `json:"state" bson:"state"`
	Title         string          `json:"title" bson:"title"`
	Body          string          `json:"body" bson:"body"`
	User          SnapshotUser    `json:"user" bson:"user"`
	Labels        []SnapshotLabel `json:"labels" bson:"labels"`
	Comments      int             `json:"comments" bson:"comments"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" bson:"updated_at"`
	Repository    *RawRepository  `json:"repository,omitempty" bson:"repository,omitempty"`
	LinkedPRCount *int            `json:"linked_pr_count,omitempty" bson:"linked_pr_count,omitempty"`
}

// IssueRef is the minimal identity needed to re-query an issue over GraphQL.
type IssueRef struct {
	ID     int64
	NodeID string
}

// SearchResult is a page of snapshots plus the upstream-reported total.
type SearchResult struct {
	TotalCount        int             `json:"total_count"`
	IncompleteResults bool            `json:"incomplete_results"`
	Items             []IssueSnapshot `json:"items"`
}
