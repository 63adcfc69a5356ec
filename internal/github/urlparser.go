package github

import "strings"

// RepoIdentifier names a repository parsed out of an issue's html_url.
type RepoIdentifier struct {
	Owner    string
	Repo     string
	FullName string
}

// ParseRepoFromIssueURL extracts owner/repo from an issue page URL like
// https://github.com/facebook/react/issues/123. Returns false when the URL
// does not carry both segments.
func ParseRepoFromIssueURL(issueURL string) (RepoIdentifier, bool) {
	repoPath := strings.TrimPrefix(issueURL, "https://github.com/")
	if idx := strings.Index(repoPath, "/issues"); idx >= 0 {
		repoPath = repoPath[:idx]
	}

	parts := strings.Split(repoPath, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return RepoIdentifier{}, false
	}

	return RepoIdentifier{
		Owner:    parts[0],
		Repo:     parts[1],
		FullName: parts[0] + "/" + parts[1],
	}, true
}
