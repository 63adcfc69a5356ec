package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoFromIssueURL(t *testing.T) {
	id, ok := ParseRepoFromIssueURL("https://github.com/facebook/react/issues/123")
	require.True(t, ok)
	assert.Equal(t, "facebook", id.Owner)
	assert.Equal(t, "react", id.Repo)
	assert.Equal(t, "facebook/react", id.FullName)
}

func TestParseRepoFromIssueURL_RepoPageURL(t *testing.T) {
	id, ok := ParseRepoFromIssueURL("https://github.com/golang/go")
	require.True(t, ok)
	assert.Equal(t, "golang/go", id.FullName)
}

func TestParseRepoFromIssueURL_Invalid(t *testing.T) {
	_, ok := ParseRepoFromIssueURL("https://github.com/onlyowner")
	assert.False(t, ok)

	_, ok = ParseRepoFromIssueURL("")
	assert.False(t, ok)
}
