package types

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty content floors at one minute", content: "", want: 1},
		{name: "short content floors at one minute", content: "a few words only", want: 1},
		{name: "exactly one minute", content: strings.Repeat("word ", 200), want: 1},
		{name: "just over one minute rounds up", content: strings.Repeat("word ", 201), want: 2},
		{name: "five minutes", content: strings.Repeat("word ", 1000), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateReadTime(tt.content))
		})
	}
}

func TestPostUpdateApply(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	author := User{ID: AdminID, Email: AdminEmail, Name: AdminName, Role: RoleAdmin}

	base := func() *BlogPost {
		return &BlogPost{
			ID:        "p1",
			Title:     "Original",
			Content:   "Body",
			Excerpt:   "Short",
			Author:    author,
			Tags:      []string{"Go"},
			Published: true,
			CreatedAt: created,
			UpdatedAt: created,
			ReadTime:  3,
		}
	}

	t.Run("nil fields leave post unchanged", func(t *testing.T) {
		p := base()
		PostUpdate{}.Apply(p)
		assert.Equal(t, base(), p)
	})

	t.Run("set fields are merged", func(t *testing.T) {
		p := base()
		title := "Changed"
		published := false
		tags := []string{"Go", "Testing"}
		PostUpdate{Title: &title, Published: &published, Tags: &tags}.Apply(p)

		assert.Equal(t, "Changed", p.Title)
		assert.False(t, p.Published)
		assert.Equal(t, []string{"Go", "Testing"}, p.Tags)
		assert.Equal(t, "Body", p.Content, "unset fields must not change")
	})

	t.Run("identity fields cannot be expressed", func(t *testing.T) {
		p := base()
		title := "Changed"
		PostUpdate{Title: &title}.Apply(p)
		assert.Equal(t, "p1", p.ID)
		assert.Equal(t, author, p.Author)
		assert.Equal(t, created, p.CreatedAt)
	})
}

func TestBlogPostClone(t *testing.T) {
	p := &BlogPost{
		ID:            "p1",
		Tags:          []string{"Go"},
		AttachedFiles: []AttachedFile{{URL: "data:,x", Type: "text/plain", Name: "x.txt"}},
	}

	cp := p.Clone()
	cp.Tags[0] = "Changed"
	cp.AttachedFiles[0].Name = "y.txt"

	assert.Equal(t, "Go", p.Tags[0], "clone must not share tag storage")
	assert.Equal(t, "x.txt", p.AttachedFiles[0].Name, "clone must not share attachment storage")
}

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "jane", NameFromEmail("jane@x.com"))
	assert.Equal(t, "no-at-sign", NameFromEmail("no-at-sign"))
	assert.Equal(t, "", NameFromEmail("@host"))
}
