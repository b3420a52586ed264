// Package session implements the session store: at most one authenticated
// identity, persisted under its own key in durable storage and rehydrated on
// attach. All identity-changing operations go through this store; observers
// are notified on every identity change.
//
// There is no credential store. Login derives the identity from the email
// alone and accepts any password; the fixed admin email yields the built-in
// admin identity.
package session

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

// storageKey is the durable storage entry owned by this store. The post
// repository never reads it.
const storageKey = "user"

// Default simulated call latencies. The original backend is mocked, so each
// identity operation pauses as a stand-in for the network round trip.
const (
	defaultAuthDelay   = time.Second
	defaultSocialDelay = 1500 * time.Millisecond
)

// timeNow is overridable in tests.
var timeNow = time.Now

// Store holds the current identity. Two states exist: anonymous
// (current == nil) and authenticated. Login, Signup, and SocialLogin move to
// authenticated (replacing any existing identity without confirmation);
// Logout moves to anonymous.
type Store struct {
	mu       sync.RWMutex
	store    kv.Store
	log      zerolog.Logger
	attached bool
	current  *types.User

	authDelay   time.Duration
	socialDelay time.Duration

	observers    map[int]func(*types.User)
	nextObserver int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithDelays overrides the simulated call latencies. Zero disables the
// pauses; tests and non-interactive callers use this.
func WithDelays(auth, social time.Duration) Option {
	return func(s *Store) {
		s.authDelay = auth
		s.socialDelay = social
	}
}

// New creates a detached session store on top of the given storage.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		store:       store,
		log:         zerolog.Nop(),
		authDelay:   defaultAuthDelay,
		socialDelay: defaultSocialDelay,
		observers:   make(map[int]func(*types.User)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach rehydrates the persisted identity, if any. A stored entry that
// fails to parse is purged and the store starts anonymous; corruption is
// never fatal. Returns ErrAlreadyAttached if called while attached.
func (s *Store) Attach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}

	raw, ok, err := s.store.Get(storageKey)
	if err != nil {
		return fmt.Errorf("reading identity: %w", err)
	}
	if ok {
		var u types.User
		if jsonErr := json.Unmarshal([]byte(raw), &u); jsonErr != nil {
			s.log.Warn().Err(jsonErr).Msg("purging malformed identity entry")
			if rmErr := s.store.Remove(storageKey); rmErr != nil {
				return fmt.Errorf("purging malformed identity: %w", rmErr)
			}
		} else {
			s.current = &u
			s.log.Debug().Str("email", u.Email).Str("role", u.Role).Msg("identity rehydrated")
		}
	}

	s.attached = true
	return nil
}

// Detach releases the store. The persisted identity is kept; observers are
// dropped. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	s.attached = false
	s.current = nil
	s.observers = make(map[int]func(*types.User))
	return nil
}

// Current returns a copy of the authenticated identity, or false when
// anonymous.
func (s *Store) Current() (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return types.User{}, false
	}
	return *s.current, true
}

// Subscribe registers an observer called with a copy of the identity after
// every identity change (nil on logout). The returned function cancels the
// subscription.
func (s *Store) Subscribe(fn func(*types.User)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Login authenticates with email and password. The password is accepted but
// never verified. The admin email yields the fixed admin identity; any other
// email yields a regular user named after the email's local part. On storage
// failure the identity is unchanged and the error wraps ErrAuthFailed.
//
// Callers validate that email and password are non-empty; the store does
// not.
func (s *Store) Login(email, password string) error {
	_ = password

	if err := s.ensureAttached(); err != nil {
		return err
	}
	s.pause(s.authDelay)

	now := timeNow().UTC()
	u := &types.User{
		ID:        newUserID(),
		Email:     email,
		Name:      types.NameFromEmail(email),
		Role:      types.RoleUser,
		CreatedAt: now,
	}
	if email == types.AdminEmail {
		u.ID = types.AdminID
		u.Name = types.AdminName
		u.Role = types.RoleAdmin
	}

	if err := s.commit(u); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("login failed")
		return fmt.Errorf("login: %w: %v", types.ErrAuthFailed, err)
	}
	s.log.Info().Str("email", email).Str("role", u.Role).Msg("logged in")
	return nil
}

// Signup registers a new account. There is no account registry, so no
// uniqueness check exists; the role is always user.
func (s *Store) Signup(email, password, name string) error {
	_ = password

	if err := s.ensureAttached(); err != nil {
		return err
	}
	s.pause(s.authDelay)

	u := &types.User{
		ID:        newUserID(),
		Email:     email,
		Name:      name,
		Role:      types.RoleUser,
		CreatedAt: timeNow().UTC(),
	}

	if err := s.commit(u); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("signup failed")
		return fmt.Errorf("signup: %w: %v", types.ErrAuthFailed, err)
	}
	s.log.Info().Str("email", email).Msg("signed up")
	return nil
}

// SocialLogin authenticates through a social provider, synthesizing the
// identity user@<provider>.com. Returns ErrUnknownProvider for providers
// other than google and facebook.
func (s *Store) SocialLogin(provider string) error {
	if provider != types.ProviderGoogle && provider != types.ProviderFacebook {
		return fmt.Errorf("social login %q: %w", provider, types.ErrUnknownProvider)
	}
	if err := s.ensureAttached(); err != nil {
		return err
	}
	s.pause(s.socialDelay)

	u := &types.User{
		ID:        newUserID(),
		Email:     fmt.Sprintf("user@%s.com", provider),
		Name:      fmt.Sprintf("%s User", provider),
		Role:      types.RoleUser,
		CreatedAt: timeNow().UTC(),
	}

	if err := s.commit(u); err != nil {
		s.log.Error().Err(err).Str("provider", provider).Msg("social login failed")
		return fmt.Errorf("social login: %w: %v", types.ErrAuthFailed, err)
	}
	s.log.Info().Str("provider", provider).Msg("social login")
	return nil
}

// ResetPassword simulates a password reset request. No email is sent and no
// token is issued; the call always succeeds and changes nothing.
func (s *Store) ResetPassword(email string) error {
	if err := s.ensureAttached(); err != nil {
		return err
	}
	s.pause(s.authDelay)
	s.log.Info().Str("email", email).Msg("password reset requested")
	return nil
}

// Logout clears the identity and its persisted entry. Logging out while
// anonymous is a no-op.
func (s *Store) Logout() error {
	if err := s.ensureAttached(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	if err := s.store.Remove(storageKey); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("removing identity: %w", err)
	}
	s.current = nil
	s.mu.Unlock()

	s.log.Info().Msg("logged out")
	s.notify(nil)
	return nil
}

// commit persists the identity and only then replaces the in-memory one, so
// a storage failure leaves the previous state intact.
func (s *Store) commit(u *types.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshaling identity: %w", err)
	}

	s.mu.Lock()
	if err := s.store.Set(storageKey, string(data)); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persisting identity: %w", err)
	}
	s.current = u
	s.mu.Unlock()

	s.notify(u)
	return nil
}

// notify calls every observer with its own copy of the identity. Observers
// run outside the store lock so they may call back into the store.
func (s *Store) notify(u *types.User) {
	s.mu.RLock()
	fns := make([]func(*types.User), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		if u == nil {
			fn(nil)
		} else {
			cp := *u
			fn(&cp)
		}
	}
}

func (s *Store) ensureAttached() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	return nil
}

// pause sleeps for the simulated call latency. The sleep happens outside
// the store lock; the operation is not cancellable once issued.
func (s *Store) pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// newUserID generates a UUID v7 for new identities, falling back to v4 if
// v7 generation fails.
func newUserID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
