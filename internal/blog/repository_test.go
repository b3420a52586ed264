package blog

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkmill/inkmill/internal/kv"
	"github.com/inkmill/inkmill/pkg/types"
)

// fakeIdentity satisfies Identity with a settable user.
type fakeIdentity struct {
	user *types.User
}

func (f *fakeIdentity) Current() (types.User, bool) {
	if f.user == nil {
		return types.User{}, false
	}
	return *f.user, true
}

// failingStore wraps a memory store and fails writes on demand.
type failingStore struct {
	*kv.Memory
	failSet bool
}

var errDiskFull = errors.New("disk full")

func (f *failingStore) Set(key, value string) error {
	if f.failSet {
		return errDiskFull
	}
	return f.Memory.Set(key, value)
}

func testUser() *types.User {
	return &types.User{
		ID:        "u1",
		Email:     "jane@x.com",
		Name:      "jane",
		Role:      types.RoleUser,
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func mustPosts(t *testing.T, repo *Repository) []*types.BlogPost {
	t.Helper()

	posts, err := repo.Posts()
	require.NoError(t, err)
	return posts
}

func newTestRepo(t *testing.T) (*Repository, *kv.Memory, *fakeIdentity) {
	t.Helper()

	mem := kv.NewMemory()
	ident := &fakeIdentity{user: testUser()}
	repo := NewRepository(mem, ident)
	require.NoError(t, repo.Attach())
	return repo, mem, ident
}

func TestAttachSeedsEmptyStore(t *testing.T) {
	repo, mem, _ := newTestRepo(t)

	posts := mustPosts(t, repo)
	require.Len(t, posts, 3)
	for _, p := range posts {
		assert.True(t, p.Published, "seed posts are published")
		assert.Equal(t, seedAuthorID, p.Author.ID)
		assert.Equal(t, types.AdminEmail, p.Author.Email)
	}

	_, ok, err := mem.Get("blogPosts")
	require.NoError(t, err)
	assert.True(t, ok, "seed must be persisted immediately")
}

func TestAttachDoesNotReseedNonEmptyStore(t *testing.T) {
	repo, mem, _ := newTestRepo(t)
	require.NoError(t, repo.DeletePost("1"))
	require.NoError(t, repo.Detach())

	again := NewRepository(mem, &fakeIdentity{})
	require.NoError(t, again.Attach())
	assert.Len(t, mustPosts(t, again), 2, "a non-empty store must not be re-seeded")
}

func TestAttachReseedsCorruptCollection(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set("blogPosts", "[{broken"))

	repo := NewRepository(mem, &fakeIdentity{})
	require.NoError(t, repo.Attach())
	assert.Len(t, mustPosts(t, repo), 3, "corrupt collection is purged and re-seeded")
}

func TestAddPost(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	created, err := repo.AddPost(types.PostDraft{
		Title:     "A New Post",
		Content:   "Some body text here.",
		Excerpt:   "Short.",
		Tags:      []string{"Go"},
		Published: true,
	})
	require.NoError(t, err)

	posts := mustPosts(t, repo)
	require.Len(t, posts, 4)
	assert.Equal(t, created.ID, posts[0].ID, "new post is prepended")
	assert.Equal(t, "jane@x.com", created.Author.Email, "author is the current identity")
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, 1, created.ReadTime, "zero read time is estimated from content")
	assert.NotNil(t, created.AttachedFiles)
}

func TestAddPostSequencePrepends(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	for i := 0; i < 5; i++ {
		p, err := repo.AddPost(types.PostDraft{Title: fmt.Sprintf("Post %d", i), Content: "x"})
		require.NoError(t, err)
		assert.Equal(t, p.ID, mustPosts(t, repo)[0].ID, "each new post lands at index 0")
	}
	assert.Len(t, mustPosts(t, repo), 8)
}

func TestAddPostUnauthenticated(t *testing.T) {
	repo, _, ident := newTestRepo(t)
	ident.user = nil

	_, err := repo.AddPost(types.PostDraft{Title: "Nope"})
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
	assert.Len(t, mustPosts(t, repo), 3, "collection must be unchanged")
}

func TestAddPostAuthorSnapshot(t *testing.T) {
	repo, _, ident := newTestRepo(t)

	created, err := repo.AddPost(types.PostDraft{Title: "Snap", Content: "x"})
	require.NoError(t, err)

	// Identity changes after creation must not propagate into the post.
	ident.user = &types.User{ID: "u2", Email: "other@x.com", Name: "other", Role: types.RoleUser}

	got, err := repo.GetPost(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", got.Author.Email)
}

func TestUpdatePost(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	base := timeNow()
	step := 0
	timeNow = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	defer func() { timeNow = time.Now }()

	created, err := repo.AddPost(types.PostDraft{Title: "Before", Content: "x"})
	require.NoError(t, err)

	title := "X"
	updated, err := repo.UpdatePost(created.ID, types.PostUpdate{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "X", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "UpdatedAt must advance")
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Author, updated.Author)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdatePostNotFound(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	_, err := repo.UpdatePost("missing", types.PostUpdate{})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Len(t, mustPosts(t, repo), 3)
}

func TestEmptyIDIsRejected(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	_, err := repo.GetPost("")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = repo.UpdatePost("", types.PostUpdate{})
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.ErrorIs(t, repo.DeletePost(""), types.ErrInvalidID)
	assert.Len(t, mustPosts(t, repo), 3)
}

func TestDeletePost(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	require.NoError(t, repo.DeletePost("2"))

	_, err := repo.GetPost("2")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Len(t, mustPosts(t, repo), 2)

	require.NoError(t, repo.DeletePost("2"), "deleting an absent id is a no-op")
	assert.Len(t, mustPosts(t, repo), 2)
}

func TestGetPostReturnsCopy(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	p, err := repo.GetPost("1")
	require.NoError(t, err)
	p.Title = "Mutated"

	again, err := repo.GetPost("1")
	require.NoError(t, err)
	assert.NotEqual(t, "Mutated", again.Title, "mutating a returned post must not affect the store")
}

func TestFeaturedPosts(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	// A draft and two published posts on top of the three seeds.
	_, err := repo.AddPost(types.PostDraft{Title: "Draft", Content: "x", Published: false})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := repo.AddPost(types.PostDraft{Title: fmt.Sprintf("Pub %d", i), Content: "x", Published: true})
		require.NoError(t, err)
	}

	featured, err := repo.FeaturedPosts()
	require.NoError(t, err)
	require.Len(t, featured, 3, "never more than three")
	for _, p := range featured {
		assert.True(t, p.Published)
	}
	assert.Equal(t, "Pub 1", featured[0].Title, "collection order, unpublished skipped")
	assert.Equal(t, "Pub 0", featured[1].Title)
}

func TestCollectionRoundTrip(t *testing.T) {
	repo, mem, _ := newTestRepo(t)

	attach := []types.AttachedFile{{URL: "data:text/plain;base64,aGk=", Type: "text/plain", Name: "hi.txt"}}
	_, err := repo.AddPost(types.PostDraft{
		Title:         "Round Trip",
		Content:       "body",
		Tags:          []string{"A", "A", "b"},
		Published:     true,
		AttachedFiles: attach,
	})
	require.NoError(t, err)
	before := mustPosts(t, repo)

	reopened := NewRepository(mem, &fakeIdentity{})
	require.NoError(t, reopened.Attach())

	after := mustPosts(t, reopened)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Title, after[i].Title)
		assert.Equal(t, before[i].Tags, after[i].Tags)
		assert.Equal(t, before[i].Author, after[i].Author)
		assert.Equal(t, before[i].AttachedFiles, after[i].AttachedFiles)
		assert.True(t, before[i].CreatedAt.Equal(after[i].CreatedAt))
		assert.True(t, before[i].UpdatedAt.Equal(after[i].UpdatedAt))
	}
}

func TestAddPostRollsBackOnPersistFailure(t *testing.T) {
	fs := &failingStore{Memory: kv.NewMemory()}
	repo := NewRepository(fs, &fakeIdentity{user: testUser()})
	require.NoError(t, repo.Attach())

	fs.failSet = true
	_, err := repo.AddPost(types.PostDraft{Title: "Lost", Content: "x"})
	require.Error(t, err)
	assert.Len(t, mustPosts(t, repo), 3, "failed persist must roll the collection back")

	fs.failSet = false
	_, err = repo.AddPost(types.PostDraft{Title: "Kept", Content: "x"})
	require.NoError(t, err)
	assert.Len(t, mustPosts(t, repo), 4)
}

func TestUpdateAndDeleteRollBackOnPersistFailure(t *testing.T) {
	fs := &failingStore{Memory: kv.NewMemory()}
	repo := NewRepository(fs, &fakeIdentity{user: testUser()})
	require.NoError(t, repo.Attach())

	fs.failSet = true

	title := "X"
	_, err := repo.UpdatePost("1", types.PostUpdate{Title: &title})
	require.Error(t, err)
	got, err := repo.GetPost("1")
	require.NoError(t, err)
	assert.NotEqual(t, "X", got.Title)

	err = repo.DeletePost("1")
	require.Error(t, err)
	assert.Len(t, mustPosts(t, repo), 3, "failed delete must restore the post")
	restored, err := repo.GetPost("1")
	require.NoError(t, err)
	assert.Equal(t, got.Title, restored.Title)
}

func TestSubscribe(t *testing.T) {
	repo, _, ident := newTestRepo(t)

	var fired int
	cancel := repo.Subscribe(func() { fired++ })

	created, err := repo.AddPost(types.PostDraft{Title: "A", Content: "x"})
	require.NoError(t, err)
	title := "B"
	_, err = repo.UpdatePost(created.ID, types.PostUpdate{Title: &title})
	require.NoError(t, err)
	require.NoError(t, repo.DeletePost(created.ID))
	assert.Equal(t, 3, fired)

	require.NoError(t, repo.DeletePost("missing"), "no-op delete must not notify")
	ident.user = nil
	_, _ = repo.AddPost(types.PostDraft{Title: "Nope"})
	assert.Equal(t, 3, fired)

	cancel()
	ident.user = testUser()
	_, err = repo.AddPost(types.PostDraft{Title: "C", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, 3, fired, "cancelled observer must not fire")
}

func TestTags(t *testing.T) {
	repo, _, _ := newTestRepo(t)

	_, err := repo.AddPost(types.PostDraft{Title: "T", Content: "x", Tags: []string{"AI", "ai", "Go", "AI"}})
	require.NoError(t, err)

	tags, err := repo.Tags()
	require.NoError(t, err)
	count := func(want string) int {
		n := 0
		for _, tag := range tags {
			if tag == want {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count("AI"), "duplicates collapse")
	assert.Equal(t, 1, count("ai"), "case-sensitive: ai is distinct from AI")
	assert.Equal(t, 1, count("Go"))
}

func TestDetachedRepository(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	require.NoError(t, repo.Detach())

	_, err := repo.AddPost(types.PostDraft{Title: "X"})
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, repo.DeletePost("1"), types.ErrStoreDetached)

	_, err = repo.Posts()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = repo.GetPost("1")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = repo.FeaturedPosts()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = repo.Tags()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}
