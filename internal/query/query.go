// Package query implements derived read views over the post repository's
// collection: free-text search, single-tag selection, and ordering. The
// layer is stateless and pure; every call recomputes from the posts it is
// given and never mutates them.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/inkmill/inkmill/pkg/types"
)

// Sort orders for Apply.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
)

// Filter narrows and orders a post collection. The zero value keeps every
// published post in newest-first order.
type Filter struct {
	// Search is matched case-insensitively as a substring of title,
	// excerpt, or content. Empty matches everything.
	Search string

	// Tag keeps only posts carrying exactly this tag. Empty disables the
	// filter.
	Tag string

	// Sort is one of the Sort constants. Anything else falls back to
	// newest-first.
	Sort string
}

// titleCollator compares titles locale-aware for the title sort.
var titleCollator = collate.New(language.English)

// Apply filters and sorts posts. Stages run in fixed order, each narrowing
// the previous result: published only, then search, then tag, then sort.
// The sort is stable: posts with equal keys keep their relative collection
// order. The input slice is never modified.
func Apply(posts []*types.BlogPost, f Filter) []*types.BlogPost {
	needle := strings.ToLower(f.Search)

	out := make([]*types.BlogPost, 0, len(posts))
	for _, p := range posts {
		if !p.Published {
			continue
		}
		if needle != "" && !matches(p, needle) {
			continue
		}
		if f.Tag != "" && !hasTag(p, f.Tag) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return titleCollator.CompareString(out[i].Title, out[j].Title) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// Tags returns the distinct tags across posts, case-sensitive, in
// first-seen order. Used to populate the tag filter choices.
func Tags(posts []*types.BlogPost) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range posts {
		for _, tag := range p.Tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out
}

func matches(p *types.BlogPost, needle string) bool {
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Excerpt), needle) ||
		strings.Contains(strings.ToLower(p.Content), needle)
}

func hasTag(p *types.BlogPost, tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
