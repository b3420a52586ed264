// Package blog implements the post repository: the canonical ordered
// collection of blog posts, persisted as a whole to durable storage after
// every mutation. The collection is newest-first by insertion; creation
// requires an authenticated identity, whose snapshot is embedded in the
// post.
package blog

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkmill/inkmill/internal/kv"
	"github.com/inkmill/inkmill/pkg/types"
)

// storageKey is the durable storage entry owned by this repository. The
// session store never reads it.
const storageKey = "blogPosts"

// featuredLimit caps the featured subset.
const featuredLimit = 3

// timeNow is overridable in tests.
var timeNow = time.Now

// Identity reports the currently authenticated user. The session store
// satisfies this; the repository reads it only to stamp authorship on
// creation.
type Identity interface {
	Current() (types.User, bool)
}

// Repository owns the post collection. Every mutation rewrites the whole
// stored collection; on a storage failure the in-memory collection is
// rolled back so it never diverges from durable state.
type Repository struct {
	mu       sync.RWMutex
	store    kv.Store
	identity Identity
	log      zerolog.Logger
	attached bool
	posts    []*types.BlogPost

	observers    map[int]func()
	nextObserver int
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the repository's logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Repository) { r.log = log }
}

// NewRepository creates a detached repository on top of the given storage.
func NewRepository(store kv.Store, identity Identity, opts ...Option) *Repository {
	r := &Repository{
		store:     store,
		identity:  identity,
		log:       zerolog.Nop(),
		observers: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach loads the collection from storage. An absent entry triggers the
// one-time seed bootstrap, persisted immediately; a malformed entry is
// purged and re-seeded. Once storage is non-empty the seed never runs
// again. Returns ErrAlreadyAttached if called while attached.
func (r *Repository) Attach() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.attached {
		return types.ErrAlreadyAttached
	}

	raw, ok, err := r.store.Get(storageKey)
	if err != nil {
		return fmt.Errorf("reading posts: %w", err)
	}

	seed := !ok
	if ok {
		var posts []*types.BlogPost
		if jsonErr := json.Unmarshal([]byte(raw), &posts); jsonErr != nil {
			r.log.Warn().Err(jsonErr).Msg("purging malformed post collection, re-seeding")
			seed = true
		} else {
			r.posts = posts
		}
	}

	if seed {
		r.posts = seedPosts()
		if err := r.persistLocked(); err != nil {
			r.posts = nil
			return fmt.Errorf("persisting seed posts: %w", err)
		}
		r.log.Info().Int("count", len(r.posts)).Msg("seeded built-in posts")
	}

	for _, p := range r.posts {
		normalize(p)
	}

	r.attached = true
	return nil
}

// Detach releases the repository. The persisted collection is kept;
// observers are dropped. Idempotent.
func (r *Repository) Detach() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.attached {
		return nil
	}
	r.attached = false
	r.posts = nil
	r.observers = make(map[int]func())
	return nil
}

// Subscribe registers an observer called after every successful mutation.
// The returned function cancels the subscription.
func (r *Repository) Subscribe(fn func()) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextObserver
	r.nextObserver++
	r.observers[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.observers, id)
	}
}

// Posts returns a snapshot copy of the whole collection in order. Returns
// ErrStoreDetached while detached.
func (r *Repository) Posts() ([]*types.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.attached {
		return nil, types.ErrStoreDetached
	}

	out := make([]*types.BlogPost, len(r.posts))
	for i, p := range r.posts {
		out[i] = p.Clone()
	}
	return out, nil
}

// AddPost creates a post from the draft. The current identity is embedded
// as the author snapshot; without one the call fails with
// ErrUnauthenticated and the collection is untouched. The new post is
// prepended, keeping the collection newest-first.
func (r *Repository) AddPost(draft types.PostDraft) (*types.BlogPost, error) {
	if err := r.ensureAttached(); err != nil {
		return nil, err
	}

	author, ok := r.identity.Current()
	if !ok {
		return nil, types.ErrUnauthenticated
	}

	now := timeNow().UTC()
	post := &types.BlogPost{
		ID:            newPostID(),
		Title:         draft.Title,
		Content:       draft.Content,
		Excerpt:       draft.Excerpt,
		Author:        author,
		Tags:          append([]string(nil), draft.Tags...),
		CoverImage:    draft.CoverImage,
		Published:     draft.Published,
		CreatedAt:     now,
		UpdatedAt:     now,
		ReadTime:      draft.ReadTime,
		AttachedFiles: append([]types.AttachedFile(nil), draft.AttachedFiles...),
	}
	if post.ReadTime == 0 {
		post.ReadTime = types.EstimateReadTime(post.Content)
	}
	normalize(post)

	r.mu.Lock()
	r.posts = append([]*types.BlogPost{post}, r.posts...)
	if err := r.persistLocked(); err != nil {
		r.posts = r.posts[1:]
		r.mu.Unlock()
		return nil, fmt.Errorf("persisting new post: %w", err)
	}
	r.mu.Unlock()

	r.log.Info().Str("id", post.ID).Str("title", post.Title).Msg("post created")
	r.notify()
	return post.Clone(), nil
}

// UpdatePost merges the set fields of the update into the post with the
// given id and unconditionally refreshes UpdatedAt. ID, Author, and
// CreatedAt cannot be changed. Returns ErrInvalidID for an empty id and
// ErrNotFound, with the collection untouched, when no post has the id.
func (r *Repository) UpdatePost(id string, update types.PostUpdate) (*types.BlogPost, error) {
	if err := r.ensureAttached(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return nil, fmt.Errorf("updating post %s: %w", id, types.ErrNotFound)
	}

	prev := r.posts[i]
	next := prev.Clone()
	update.Apply(next)
	next.UpdatedAt = timeNow().UTC()

	r.posts[i] = next
	if err := r.persistLocked(); err != nil {
		r.posts[i] = prev
		r.mu.Unlock()
		return nil, fmt.Errorf("persisting updated post: %w", err)
	}
	r.mu.Unlock()

	r.log.Info().Str("id", id).Msg("post updated")
	r.notify()
	return next.Clone(), nil
}

// DeletePost removes the post with the given id. An empty id returns
// ErrInvalidID; deleting an absent id is a no-op, the collection is
// unchanged and no error is returned.
func (r *Repository) DeletePost(id string) error {
	if err := r.ensureAttached(); err != nil {
		return err
	}
	if id == "" {
		return types.ErrInvalidID
	}

	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return nil
	}

	removed := r.posts[i]
	r.posts = append(r.posts[:i], r.posts[i+1:]...)
	if err := r.persistLocked(); err != nil {
		rest := append([]*types.BlogPost{removed}, r.posts[i:]...)
		r.posts = append(r.posts[:i], rest...)
		r.mu.Unlock()
		return fmt.Errorf("persisting after delete: %w", err)
	}
	r.mu.Unlock()

	r.log.Info().Str("id", id).Msg("post deleted")
	r.notify()
	return nil
}

// GetPost returns a copy of the post with the given id, or ErrNotFound.
// Pure lookup, no side effects.
func (r *Repository) GetPost(id string) (*types.BlogPost, error) {
	if err := r.ensureAttached(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return nil, fmt.Errorf("getting post %s: %w", id, types.ErrNotFound)
}

// FeaturedPosts returns up to the first three published posts in collection
// order. The collection is newest-first by insertion, so no sort is
// applied here. Returns ErrStoreDetached while detached.
func (r *Repository) FeaturedPosts() ([]*types.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.attached {
		return nil, types.ErrStoreDetached
	}

	var out []*types.BlogPost
	for _, p := range r.posts {
		if !p.Published {
			continue
		}
		out = append(out, p.Clone())
		if len(out) == featuredLimit {
			break
		}
	}
	return out, nil
}

// Tags returns the distinct tags across all posts, case-sensitive, in
// first-seen order. Returns ErrStoreDetached while detached.
func (r *Repository) Tags() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.attached {
		return nil, types.ErrStoreDetached
	}

	seen := make(map[string]bool)
	var out []string
	for _, p := range r.posts {
		for _, tag := range p.Tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out, nil
}

// persistLocked serializes the whole collection and writes it under the
// repository's key. The caller must hold r.mu.
func (r *Repository) persistLocked() error {
	data, err := json.Marshal(r.posts)
	if err != nil {
		return fmt.Errorf("marshaling posts: %w", err)
	}
	return r.store.Set(storageKey, string(data))
}

// indexLocked returns the position of the post with the given id, or -1.
// The caller must hold r.mu.
func (r *Repository) indexLocked(id string) int {
	for i, p := range r.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) ensureAttached() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.attached {
		return types.ErrStoreDetached
	}
	return nil
}

// notify calls every observer. Observers run outside the repository lock so
// they may read back into it.
func (r *Repository) notify() {
	r.mu.RLock()
	fns := make([]func(), 0, len(r.observers))
	for _, fn := range r.observers {
		fns = append(fns, fn)
	}
	r.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// normalize gives optional list fields their empty defaults so stored
// records always carry explicit (possibly empty) lists.
func normalize(p *types.BlogPost) {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.AttachedFiles == nil {
		p.AttachedFiles = []types.AttachedFile{}
	}
	if p.ReadTime < 1 {
		p.ReadTime = 1
	}
}

// newPostID generates a UUID v7 for new posts, falling back to v4 if v7
// generation fails. v7 IDs are time-ordered, so identifiers remain
// timestamp-based without a collision risk.
func newPostID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
