package types

import (
	"strings"
	"time"
)

// readTimeWordsPerMinute is the reading speed used to estimate a post's
// read time from its content.
const readTimeWordsPerMinute = 200

// AttachedFile describes a file embedded in a post as a data URI. The
// repository stores the descriptor as-is; content is never validated against
// the declared MIME type.
type AttachedFile struct {
	URL  string `json:"url"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// BlogPost is a single post in the repository's collection. Author is a
// snapshot of the identity that created the post, not a live reference:
// later identity changes do not propagate, and there is no cascade on
// logout.
type BlogPost struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Excerpt       string         `json:"excerpt"`
	Author        User           `json:"author"`
	Tags          []string       `json:"tags"`
	CoverImage    string         `json:"coverImage,omitempty"`
	Published     bool           `json:"published"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	ReadTime      int            `json:"readTime"`
	AttachedFiles []AttachedFile `json:"attachedFiles"`
}

// Clone returns a deep copy of the post. Callers receive clones from the
// repository so that mutating a returned post cannot bypass UpdatePost.
func (p *BlogPost) Clone() *BlogPost {
	cp := *p
	if p.Tags != nil {
		cp.Tags = make([]string, len(p.Tags))
		copy(cp.Tags, p.Tags)
	}
	if p.AttachedFiles != nil {
		cp.AttachedFiles = make([]AttachedFile, len(p.AttachedFiles))
		copy(cp.AttachedFiles, p.AttachedFiles)
	}
	return &cp
}

// PostDraft carries the caller-supplied fields for a new post. The
// repository assigns ID, Author, and timestamps; a zero ReadTime is replaced
// with an estimate from Content.
type PostDraft struct {
	Title         string
	Content       string
	Excerpt       string
	Tags          []string
	CoverImage    string
	Published     bool
	ReadTime      int
	AttachedFiles []AttachedFile
}

// PostUpdate is a partial update for an existing post. Nil fields are left
// unchanged. ID, Author, and CreatedAt are intentionally absent: a partial
// update cannot express them, so they can never leak through a merge.
type PostUpdate struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Tags          *[]string
	CoverImage    *string
	Published     *bool
	ReadTime      *int
	AttachedFiles *[]AttachedFile
}

// Apply merges the set fields of the update into the post. The caller is
// responsible for refreshing UpdatedAt.
func (u PostUpdate) Apply(p *BlogPost) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Excerpt != nil {
		p.Excerpt = *u.Excerpt
	}
	if u.Tags != nil {
		p.Tags = append([]string(nil), (*u.Tags)...)
	}
	if u.CoverImage != nil {
		p.CoverImage = *u.CoverImage
	}
	if u.Published != nil {
		p.Published = *u.Published
	}
	if u.ReadTime != nil {
		p.ReadTime = *u.ReadTime
	}
	if u.AttachedFiles != nil {
		p.AttachedFiles = append([]AttachedFile(nil), (*u.AttachedFiles)...)
	}
}

// EstimateReadTime returns the estimated reading time for content in whole
// minutes, at 200 words per minute, never less than one minute.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + readTimeWordsPerMinute - 1) / readTimeWordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
