// Package session owns the authenticated session: the bearer token, the
// cached user profile, and the lifecycle between them. State machine:
// anonymous -> authenticating -> authenticated -> anonymous (logout or 401).
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ymgs-pharma/storefront/internal/localstore"
	"github.com/ymgs-pharma/storefront/pkg/api"
)

// State names a point in the session lifecycle.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// Manager is the single owner of session state. It implements
// api.TokenSource so the HTTP client always sees the live token.
type Manager struct {
	mu      sync.RWMutex
	state   State
	token   string
	profile *api.UserProfile
	store   *localstore.Store
}

// NewManager builds a session manager over the persisted store.
func NewManager(store *localstore.Store) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("local store is required")
	}
	return &Manager{state: StateAnonymous, store: store}, nil
}

// Hydrate restores a persisted session, if one exists. A missing token is
// simply an anonymous start, not an error.
func (m *Manager) Hydrate() error {
	token, err := m.store.Get(localstore.KeyToken)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var profile *api.UserProfile
	if raw, err := m.store.Get(localstore.KeyUser); err == nil {
		var decoded api.UserProfile
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			profile = &decoded
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.profile = profile
	m.state = StateAuthenticated
	return nil
}

// BeginLogin moves into authenticating. Only valid from anonymous.
func (m *Manager) BeginLogin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAnonymous {
		return fmt.Errorf("cannot login from state %s", m.state)
	}
	m.state = StateAuthenticating
	return nil
}

// CompleteLogin stores the issued token and profile and persists both.
func (m *Manager) CompleteLogin(token string, profile api.UserProfile) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := m.store.Put(localstore.KeyToken, token); err != nil {
		return err
	}
	if err := m.store.Put(localstore.KeyUser, string(raw)); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.profile = &profile
	m.state = StateAuthenticated
	return nil
}

// FailLogin returns to anonymous after a rejected login attempt.
func (m *Manager) FailLogin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticating {
		m.state = StateAnonymous
	}
}

// Logout destroys the session locally. Server-side logout is the caller's
// concern and best-effort.
func (m *Manager) Logout() error {
	return m.clear()
}

// ClearOn401 destroys the session after the backend rejected the token.
func (m *Manager) ClearOn401() error {
	return m.clear()
}

func (m *Manager) clear() error {
	if err := m.store.Delete(localstore.KeyToken); err != nil {
		return err
	}
	if err := m.store.Delete(localstore.KeyUser); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.profile = nil
	m.state = StateAnonymous
	return nil
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether a token is held.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Profile returns a copy of the cached profile, or nil when anonymous.
func (m *Manager) Profile() *api.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return nil
	}
	copied := *m.profile
	return &copied
}

// TokenExpiry inspects the token's exp claim without verifying the
// signature; verification is the backend's job. Opaque (non-JWT) tokens
// return no expiry.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	token := m.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
