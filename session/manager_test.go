package session

import (
	"context"
	"errors"
	"testing"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

type fakeGateway struct {
	current    *Session
	currentErr error
	signOutErr error

	listener     func(*Session)
	signOutCalls int
}

func (g *fakeGateway) CurrentSession(ctx context.Context) (*Session, error) {
	return g.current, g.currentErr
}

func (g *fakeGateway) OnAuthStateChange(listener func(*Session)) (func(), error) {
	g.listener = listener
	return func() { g.listener = nil }, nil
}

func (g *fakeGateway) SignUp(ctx context.Context, request *domain.RegisterRequest) error {
	return nil
}

func (g *fakeGateway) SignIn(ctx context.Context, email, password string) error {
	return nil
}

func (g *fakeGateway) OAuthURL(provider string) (string, error) {
	return "https://oauth.example/" + provider, nil
}

func (g *fakeGateway) SignOut(ctx context.Context) error {
	g.signOutCalls++
	return g.signOutErr
}

func (g *fakeGateway) SendPasswordResetEmail(ctx context.Context, email string) error {
	return nil
}

type fakeProfiles struct {
	profile    *domain.Profile
	fetchErr   error
	updateErr  error
	fetchCalls int
}

func (p *fakeProfiles) FetchProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	p.fetchCalls++
	return p.profile, p.fetchErr
}

func (p *fakeProfiles) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (*domain.Profile, error) {
	if p.updateErr != nil {
		return nil, p.updateErr
	}
	updated := *p.profile
	if name, ok := fields["fullName"].(string); ok {
		updated.FullName = name
	}
	return &updated, nil
}

func studentProfile() *domain.Profile {
	return &domain.Profile{UserID: "u1", Email: "s@test.com", FullName: "Asha", Role: domain.Student}
}

func TestStartResolvesExistingSession(t *testing.T) {
	gateway := &fakeGateway{current: &Session{AccessToken: "t", UserID: "u1"}}
	profiles := &fakeProfiles{profile: studentProfile()}
	manager := NewManager(gateway, profiles)

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer manager.Close()

	if manager.State() != Authenticated {
		t.Errorf("State() = %v, want Authenticated", manager.State())
	}
	if manager.Role() != domain.Student {
		t.Errorf("Role() = %q, want student", manager.Role())
	}
	if profiles.fetchCalls != 1 {
		t.Errorf("profile fetched %d times, want 1", profiles.fetchCalls)
	}
}

func TestStartWithoutSession(t *testing.T) {
	gateway := &fakeGateway{}
	profiles := &fakeProfiles{}
	manager := NewManager(gateway, profiles)

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer manager.Close()

	if manager.State() != Unauthenticated {
		t.Errorf("State() = %v, want Unauthenticated", manager.State())
	}
	if profiles.fetchCalls != 0 {
		t.Errorf("profile fetched %d times, want 0", profiles.fetchCalls)
	}
}

func TestAuthFeedReResolves(t *testing.T) {
	gateway := &fakeGateway{}
	profiles := &fakeProfiles{profile: studentProfile()}
	manager := NewManager(gateway, profiles)

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer manager.Close()

	gateway.listener(&Session{AccessToken: "t", UserID: "u1"})
	if manager.State() != Authenticated {
		t.Errorf("State() = %v, want Authenticated after feed emit", manager.State())
	}

	// nil emission (expiry) drops back to unauthenticated.
	gateway.listener(nil)
	if manager.State() != Unauthenticated {
		t.Errorf("State() = %v, want Unauthenticated after nil emit", manager.State())
	}
	if manager.Profile() != nil {
		t.Error("Profile() retained after nil emit")
	}
}

func TestProfileFetchFailureKeepsSession(t *testing.T) {
	fetchErr := errors.New("profiles unreachable")
	gateway := &fakeGateway{current: &Session{AccessToken: "t", UserID: "u1"}}
	profiles := &fakeProfiles{fetchErr: fetchErr}
	manager := NewManager(gateway, profiles)

	var reported error
	manager.OnError = func(err error) { reported = err }

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer manager.Close()

	if manager.State() != Authenticated {
		t.Errorf("State() = %v, want Authenticated despite profile failure", manager.State())
	}
	if manager.Profile() != nil {
		t.Error("Profile() should be nil after failed fetch")
	}
	if manager.Role() != "" {
		t.Errorf("Role() = %q, want empty", manager.Role())
	}
	if reported != fetchErr {
		t.Errorf("OnError got %v, want %v", reported, fetchErr)
	}
}

func TestSignOutClearsStateEvenWhenGatewayFails(t *testing.T) {
	gateway := &fakeGateway{
		current:    &Session{AccessToken: "t", UserID: "u1"},
		signOutErr: errors.New("network down"),
	}
	profiles := &fakeProfiles{profile: studentProfile()}
	manager := NewManager(gateway, profiles)

	var reported error
	signedOut := false
	manager.OnError = func(err error) { reported = err }
	manager.OnSignedOut = func() {
		signedOut = true
		// Local state is already cleared by the time this fires.
		if manager.IsAuthenticated() {
			t.Error("still authenticated inside OnSignedOut")
		}
	}

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer manager.Close()

	manager.SignOut(context.Background())

	if manager.State() != Unauthenticated {
		t.Errorf("State() = %v, want Unauthenticated", manager.State())
	}
	if manager.Session() != nil || manager.Profile() != nil {
		t.Error("session or profile survived sign-out")
	}
	if reported == nil {
		t.Error("gateway failure was not reported")
	}
	if !signedOut {
		t.Error("OnSignedOut did not fire")
	}
	if gateway.signOutCalls != 1 {
		t.Errorf("gateway.SignOut called %d times, want 1", gateway.signOutCalls)
	}
}

func TestUpdateProfileMergesOnlyOnSuccess(t *testing.T) {
	gateway := &fakeGateway{current: &Session{AccessToken: "t", UserID: "u1"}}
	profiles := &fakeProfiles{profile: studentProfile()}
	manager := NewManager(gateway, profiles)

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer manager.Close()

	if err := manager.UpdateProfile(context.Background(), map[string]interface{}{"fullName": "Asha K"}); err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if got := manager.Profile().FullName; got != "Asha K" {
		t.Errorf("FullName = %q, want %q", got, "Asha K")
	}

	profiles.updateErr = errors.New("rejected")
	if err := manager.UpdateProfile(context.Background(), map[string]interface{}{"fullName": "X"}); err == nil {
		t.Fatal("UpdateProfile() accepted a rejected update")
	}
	if got := manager.Profile().FullName; got != "Asha K" {
		t.Errorf("FullName = %q after rejected update, want %q", got, "Asha K")
	}
}

func TestUpdateProfileUnauthenticated(t *testing.T) {
	manager := NewManager(&fakeGateway{}, &fakeProfiles{})
	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer manager.Close()

	err := manager.UpdateProfile(context.Background(), map[string]interface{}{"fullName": "X"})
	if err != ErrUnauthenticated {
		t.Errorf("UpdateProfile() error = %v, want ErrUnauthenticated", err)
	}
}

func TestRefreshProfileNoopWhenUnauthenticated(t *testing.T) {
	profiles := &fakeProfiles{}
	manager := NewManager(&fakeGateway{}, profiles)
	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer manager.Close()

	if err := manager.RefreshProfile(context.Background()); err != nil {
		t.Errorf("RefreshProfile() error: %v", err)
	}
	if profiles.fetchCalls != 0 {
		t.Errorf("profile fetched %d times, want 0", profiles.fetchCalls)
	}
}
