// Package session owns the authenticated identity: login and logout
// lifecycle, restore-on-start from durable local storage, and the explicit
// cart hydration trigger for non-administrative accounts.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/NikitArias/online-store-loyalty/internal/localstore"
	"github.com/NikitArias/online-store-loyalty/internal/models"
)

// Phase is the session lifecycle state. The only transitions are
// Uninitialized → Restoring → (Anonymous | Authenticated) and
// Authenticated → Anonymous on logout.
type Phase int

const (
	Uninitialized Phase = iota
	Restoring
	Anonymous
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Restoring:
		return "restoring"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// hydrator is the cart synchronizer as the session sees it.
type hydrator interface {
	Hydrate(ctx context.Context, token string)
	Clear()
}

// backend is the slice of the REST client the session consumes.
type backend interface {
	Logout(ctx context.Context, token string) error
}

// persistedUser is the identity as written to local storage; the token is a
// separate key, mirroring the original storage layout.
type persistedUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

type Store struct {
	api     backend
	cart    hydrator
	storage *localstore.Store
	logger  *slog.Logger

	mu       sync.Mutex
	phase    Phase
	identity models.Identity
	restored bool
}

// New wires the session ahead of the cart: the cart only ever hydrates when
// the session hands it a token.
func New(api backend, cart hydrator, storage *localstore.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{api: api, cart: cart, storage: storage, logger: logger, phase: Uninitialized}
}

// Restore reads the persisted identity once per process. A persisted token
// means the user is logged in again; non-admin roles trigger cart hydration.
// The restoring phase always completes, whatever is (or is not) on disk.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	if s.restored {
		s.mu.Unlock()
		return
	}
	s.restored = true
	s.phase = Restoring
	s.mu.Unlock()

	identity, ok := s.readPersisted()

	s.mu.Lock()
	if !ok {
		s.phase = Anonymous
		s.mu.Unlock()
		return
	}
	s.identity = identity
	s.phase = Authenticated
	s.mu.Unlock()

	if !identity.IsAdmin() && identity.Token != "" {
		s.cart.Hydrate(ctx, identity.Token)
	}
}

func (s *Store) readPersisted() (models.Identity, bool) {
	raw, ok := s.storage.Get(localstore.KeyUser)
	if !ok {
		return models.Identity{}, false
	}
	var saved persistedUser
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		s.logger.Warn("discarding unreadable persisted identity", "error", err)
		return models.Identity{}, false
	}
	identity := models.Identity{
		ID:    saved.ID,
		Email: saved.Email,
		Role:  saved.Role,
		Name:  saved.Name,
	}
	if token, ok := s.storage.Get(localstore.KeyToken); ok {
		identity.Token = token
	}
	return identity, true
}

// Login installs a freshly authenticated identity, persists it, and triggers
// cart hydration for non-admin accounts. A login response without a token is
// logged and kept in memory only as far as the identity fields go; nothing
// token-dependent fires.
func (s *Store) Login(ctx context.Context, identity models.Identity) {
	s.mu.Lock()
	s.identity = identity
	s.phase = Authenticated
	s.mu.Unlock()

	saved, err := json.Marshal(persistedUser{
		ID:    identity.ID,
		Email: identity.Email,
		Role:  identity.Role,
		Name:  identity.Name,
	})
	if err == nil {
		if err := s.storage.Set(localstore.KeyUser, string(saved)); err != nil {
			s.logger.Warn("failed to persist identity", "error", err)
		}
	}

	if identity.Token == "" {
		s.logger.Error("login response carried no token", "email", identity.Email)
		// A token left over from an earlier session would not belong to
		// this identity.
		if err := s.storage.Delete(localstore.KeyToken); err != nil {
			s.logger.Warn("failed to drop stale token", "error", err)
		}
		return
	}
	if err := s.storage.Set(localstore.KeyToken, identity.Token); err != nil {
		s.logger.Warn("failed to persist token", "error", err)
	}
	if !identity.IsAdmin() {
		s.cart.Hydrate(ctx, identity.Token)
	}
}

// Logout notifies the server best-effort, then unconditionally clears the
// in-memory identity, empties the cart and wipes local storage.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.identity.Token
	s.mu.Unlock()

	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			s.logger.Warn("server logout failed", "error", err)
		}
	}

	s.mu.Lock()
	s.identity = models.Identity{}
	s.phase = Anonymous
	s.mu.Unlock()

	s.cart.Clear()
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("failed to clear local storage", "error", err)
	}
}

// Current returns the identity, with ok false while anonymous.
func (s *Store) Current() (models.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Authenticated {
		return models.Identity{}, false
	}
	return s.identity, true
}

// Token returns the bearer token, empty while anonymous or when the login
// response carried none.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Authenticated {
		return ""
	}
	return s.identity.Token
}

// Loading reports whether the restore phase has not finished yet.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == Uninitialized || s.phase == Restoring
}

// Phase returns the current lifecycle state.
func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}
