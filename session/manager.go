// Package session is the single source of truth for "who is the current
// actor and what may they do". One Manager is constructed at process start;
// every other component reads from it and never writes identity state of
// its own.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

type State int

const (
	Initializing State = iota
	Unauthenticated
	Authenticated
)

// Session is the opaque token reference issued by the auth gateway.
type Session struct {
	AccessToken string
	UserID      string
	Email       string
	ExpiresAt   time.Time
}

// Gateway is the auth side of the managed backend.
type Gateway interface {
	CurrentSession(ctx context.Context) (*Session, error)
	// OnAuthStateChange registers a listener for the process lifetime and
	// returns its teardown. Every emitted session (including nil on
	// expiry) re-runs resolution.
	OnAuthStateChange(listener func(*Session)) (unsubscribe func(), err error)
	SignUp(ctx context.Context, request *domain.RegisterRequest) error
	SignIn(ctx context.Context, email, password string) error
	OAuthURL(provider string) (string, error)
	SignOut(ctx context.Context) error
	SendPasswordResetEmail(ctx context.Context, email string) error
}

// ProfileSource is the profile side of the managed backend.
type ProfileSource interface {
	FetchProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (*domain.Profile, error)
}

type Manager struct {
	gateway  Gateway
	profiles ProfileSource

	mu             sync.Mutex
	state          State
	session        *Session
	profile        *domain.Profile
	profileLoading bool
	unsubscribe    func()

	// OnError receives profile-fetch and sign-out failures; OnSignedOut
	// fires after every sign-out attempt, success or not.
	OnError     func(error)
	OnSignedOut func()
}

// NewManager builds the session state machine for embedded clients (desktop
// shells, CLIs, tests). The HTTP server does not hold one; its requests carry
// their own bearer token through the casbin middleware instead.
func NewManager(gateway Gateway, profiles ProfileSource) *Manager {
	return &Manager{
		gateway:  gateway,
		profiles: profiles,
		state:    Initializing,
	}
}

// Start asks the gateway for the current session exactly once, then stays
// subscribed to the auth-state feed until Close. Re-resolving an unchanged
// session is accepted redundancy.
func (m *Manager) Start(ctx context.Context) error {
	current, err := m.gateway.CurrentSession(ctx)
	if err != nil {
		m.resolve(ctx, nil)
		return err
	}
	m.resolve(ctx, current)

	unsubscribe, err := m.gateway.OnAuthStateChange(func(session *Session) {
		m.resolve(context.Background(), session)
	})
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
	return nil
}

// Close tears down the auth-feed subscription.
func (m *Manager) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// resolve runs the session→profile resolution. A profile fetch failure
// keeps the session authenticated with an unknown role; the session is
// still valid even when the profile row is unreachable.
func (m *Manager) resolve(ctx context.Context, session *Session) {
	if session == nil {
		m.mu.Lock()
		m.state = Unauthenticated
		m.session = nil
		m.profile = nil
		m.profileLoading = false
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.state = Authenticated
	m.session = session
	m.profileLoading = true
	m.mu.Unlock()

	profile, err := m.profiles.FetchProfile(ctx, session.UserID)

	m.mu.Lock()
	m.profileLoading = false
	if err != nil {
		m.profile = nil
	} else {
		m.profile = profile
	}
	m.mu.Unlock()

	if err != nil && m.OnError != nil {
		m.OnError(err)
	}
}

// SignUp delegates to the gateway. On success the user is not signed in:
// the account still needs mail confirmation.
func (m *Manager) SignUp(ctx context.Context, request *domain.RegisterRequest) error {
	return m.gateway.SignUp(ctx, request)
}

// SignIn delegates to the gateway and sets no state of its own; the auth
// feed populates the authenticated state asynchronously.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	return m.gateway.SignIn(ctx, email, password)
}

// OAuthURL starts a redirect-based flow. A successful call only yields the
// provider URL; local state never changes here.
func (m *Manager) OAuthURL(provider string) (string, error) {
	return m.gateway.OAuthURL(provider)
}

// SignOut clears local state before the gateway call so the sign-out is
// locally instantaneous. A gateway failure is reported but never rolled
// back; OnSignedOut fires unconditionally afterwards.
func (m *Manager) SignOut(ctx context.Context) {
	m.mu.Lock()
	m.state = Unauthenticated
	m.session = nil
	m.profile = nil
	m.profileLoading = false
	m.mu.Unlock()

	if err := m.gateway.SignOut(ctx); err != nil && m.OnError != nil {
		m.OnError(err)
	}

	if m.OnSignedOut != nil {
		m.OnSignedOut()
	}
}

// UpdateProfile merges into the cached profile only after the remote update
// succeeded; a rejected update leaves the previous profile intact.
func (m *Manager) UpdateProfile(ctx context.Context, fields map[string]interface{}) error {
	m.mu.Lock()
	session := m.session
	m.mu.Unlock()
	if session == nil {
		return ErrUnauthenticated
	}

	updated, err := m.profiles.UpdateProfile(ctx, session.UserID, fields)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.profile = updated
	m.mu.Unlock()
	return nil
}

// RefreshProfile re-runs the profile fetch for the current identity and is
// a no-op when unauthenticated.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	m.mu.Lock()
	session := m.session
	m.mu.Unlock()
	if session == nil {
		return nil
	}

	profile, err := m.profiles.FetchProfile(ctx, session.UserID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.profile = profile
	m.mu.Unlock()
	return nil
}

// SendPasswordResetEmail is fire and forget; no state change either way.
func (m *Manager) SendPasswordResetEmail(ctx context.Context, email string) error {
	return m.gateway.SendPasswordResetEmail(ctx, email)
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Authenticated
}

func (m *Manager) ProfileLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profileLoading
}

func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *Manager) Profile() *domain.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile
}

// Role is empty while no profile is resolved.
func (m *Manager) Role() domain.Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return ""
	}
	return m.profile.Role
}
