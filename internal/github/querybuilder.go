package github

import "strings"

// escapeForQualifier wraps a value in double quotes, backslash-escaping any
// embedded quote so it survives GitHub's search-qualifier grammar.
func escapeForQualifier(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}

// IssueQueryBuilder composes a GitHub issue search query term by term.
// A builder can be cloned so a partially-built query serves as a template for
// several language variants without the copies sharing state.
type IssueQueryBuilder struct {
	parts []string
}

// NewIssueQuery returns an empty builder.
func NewIssueQuery() *IssueQueryBuilder {
	return &IssueQueryBuilder{}
}

// Clone returns an independent copy of the builder.
func (b *IssueQueryBuilder) Clone() *IssueQueryBuilder {
	parts := make([]string, len(b.parts))
	copy(parts, b.parts)
	return &IssueQueryBuilder{parts: parts}
}

// WithBaseFilters appends the two terms every search starts with.
func (b *IssueQueryBuilder) WithBaseFilters() *IssueQueryBuilder {
	b.parts = append(b.parts, "is:issue", "is:open")
	return b
}

// WithLabels appends a single label qualifier listing every label
// comma-joined, each individually quoted. No labels, no qualifier.
func (b *IssueQueryBuilder) WithLabels(labels []string) *IssueQueryBuilder {
	if len(labels) == 0 {
		return b
	}
	escaped := make([]string, len(labels))
	for i, label := range labels {
		escaped[i] = escapeForQualifier(label)
	}
	b.parts = append(b.parts, "label:"+strings.Join(escaped, ","))
	return b
}

// WithNoComments appends comments:0 when enabled.
func (b *IssueQueryBuilder) WithNoComments(enabled bool) *IssueQueryBuilder {
	if enabled {
		b.parts = append(b.parts, "comments:0")
	}
	return b
}

// WithNoLinkedPRs appends -linked:pr when enabled.
func (b *IssueQueryBuilder) WithNoLinkedPRs(enabled bool) *IssueQueryBuilder {
	if enabled {
		b.parts = append(b.parts, "-linked:pr")
	}
	return b
}

// WithSearchQuery appends free text verbatim. Empty text is skipped.
func (b *IssueQueryBuilder) WithSearchQuery(query string) *IssueQueryBuilder {
	if query != "" {
		b.parts = append(b.parts, query)
	}
	return b
}

// WithLanguage appends a single quoted language qualifier. The builder never
// handles multiple languages; the fetcher issues one query per language
// because OR-ed language qualifiers bias the upstream ranking.
func (b *IssueQueryBuilder) WithLanguage(language string) *IssueQueryBuilder {
	if language != "" {
		b.parts = append(b.parts, "language:"+escapeForQualifier(language))
	}
	return b
}

// Build renders the accumulated terms as a space-joined query string.
func (b *IssueQueryBuilder) Build() string {
	return strings.Join(b.parts, " ")
}
