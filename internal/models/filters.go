package models

// Sort enumerates the orderings the issue search endpoint accepts.
type Sort string

const (
	SortCreated  Sort = "created"
	SortUpdated  Sort = "updated"
	SortComments Sort = "comments"
)

// SearchFilters is the user's search intent. It is passed by value into the
// core; a filter set never mutates once a search run starts.
type SearchFilters struct {
	Language        []string `json:"language" bson:"language"`
	Label           []string `json:"label" bson:"label"`
	Sort            Sort     `json:"sort" bson:"sort"`
	SearchQuery     string   `json:"search_query" bson:"search_query"`
	OnlyNoComments  bool     `json:"only_no_comments" bson:"only_no_comments"`
	OnlyNoLinkedPRs bool     `json:"only_no_linked_prs" bson:"only_no_linked_prs"`
	MinStars        *int     `json:"min_stars,omitempty" bson:"min_stars,omitempty"`
}

// DefaultFilters returns the out-of-the-box filter set: open "help wanted"
// issues, newest first.
func DefaultFilters() SearchFilters {
	return SearchFilters{
		Language:    []string{},
		Label:       []string{"help wanted"},
		Sort:        SortCreated,
		SearchQuery: "",
	}
}

// Equal reports whether two filter sets describe the same search. The
// controller uses it to decide when pagination must restart.
func (f SearchFilters) Equal(other SearchFilters) bool {
	if f.Sort != other.Sort ||
		f.SearchQuery != other.SearchQuery ||
		f.OnlyNoComments != other.OnlyNoComments ||
		f.OnlyNoLinkedPRs != other.OnlyNoLinkedPRs {
		return false
	}
	if (f.MinStars == nil) != (other.MinStars == nil) {
		return false
	}
	if f.MinStars != nil && *f.MinStars != *other.MinStars {
		return false
	}
	return equalStrings(f.Language, other.Language) && equalStrings(f.Label, other.Label)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
