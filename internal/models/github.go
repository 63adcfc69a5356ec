package models

import "time"

// RawUser captures the author fields GitHub's REST API attaches to an issue.
type RawUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// RawLabel is a label as returned by the issue search endpoint.
type RawLabel struct {
	ID          int64  `json:"id"`
	NodeID      string `json:"node_id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Default     bool   `json:"default"`
	Description string `json:"description"`
}

// RawIssue captures the fields we care about from GitHub's issue search API.
// PullRequest is decoded only so callers can tell issues and PRs apart; it is
// never carried into a snapshot.
type RawIssue struct {
	ID            int64      `json:"id"`
	NodeID        string     `json:"node_id"`
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	State         string     `json:"state"`
	HTMLURL       string     `json:"html_url"`
	RepositoryURL string     `json:"repository_url"`
	Comments      int        `json:"comments"`
	User          RawUser    `json:"user"`
	Labels        []RawLabel `json:"labels"`
	PullRequest   *struct {
		URL     string `json:"url"`
		HTMLURL string `json:"html_url"`
	} `json:"pull_request,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RawRepository is repository metadata from GET /repos/{owner}/{repo}.
type RawRepository struct {
	ID              int64   `json:"id"`
	NodeID          string  `json:"node_id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Private         bool    `json:"private"`
	Owner           RawUser `json:"owner"`
	HTMLURL         string  `json:"html_url"`
	Description     string  `json:"description"`
	Fork            bool    `json:"fork"`
	StargazersCount int     `json:"stargazers_count"`
	WatchersCount   int     `json:"watchers_count"`
	Language        string  `json:"language"`
	ForksCount      int     `json:"forks_count"`
	OpenIssuesCount int     `json:"open_issues_count"`
	Archived        bool    `json:"archived"`
	DefaultBranch   string  `json:"default_branch"`
}

// SearchResponse is the raw issue search payload: the upstream total, the
// partial-results flag, and the matching issues in ranking order.
type SearchResponse struct {
	TotalCount        int        `json:"total_count"`
	IncompleteResults bool       `json:"incomplete_results"`
	Items             []RawIssue `json:"items"`
}
