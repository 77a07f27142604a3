package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/authorization"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/session"
)

// LocalGateway adapts AuthService to the session.Gateway contract for
// embedded clients. It keeps the one current session in memory and fans
// auth-state changes out to every registered listener.
type LocalGateway struct {
	auth *AuthService

	mu        sync.Mutex
	current   *session.Session
	listeners map[int]func(*session.Session)
	nextID    int
}

func NewLocalGateway(auth *AuthService) *LocalGateway {
	return &LocalGateway{
		auth:      auth,
		listeners: make(map[int]func(*session.Session)),
	}
}

func (gateway *LocalGateway) CurrentSession(ctx context.Context) (*session.Session, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	return gateway.current, nil
}

func (gateway *LocalGateway) OnAuthStateChange(listener func(*session.Session)) (func(), error) {
	gateway.mu.Lock()
	id := gateway.nextID
	gateway.nextID++
	gateway.listeners[id] = listener
	gateway.mu.Unlock()

	return func() {
		gateway.mu.Lock()
		delete(gateway.listeners, id)
		gateway.mu.Unlock()
	}, nil
}

func (gateway *LocalGateway) SignUp(ctx context.Context, request *domain.RegisterRequest) error {
	_, _, err := gateway.auth.Register(ctx, request)
	return err
}

// SignIn exchanges credentials for a token and emits the new session on the
// auth feed. It sets no listener-visible state directly; consumers hear
// about it through the feed.
func (gateway *LocalGateway) SignIn(ctx context.Context, email, password string) error {
	token, err := gateway.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	parsed := authorization.GetToken(token)
	if parsed == nil {
		return fmt.Errorf(errors.InvalidTokenError)
	}
	claims, err := authorization.GetClaims(parsed.Bytes())
	if err != nil {
		return err
	}

	current := &session.Session{
		AccessToken: token,
		UserID:      claims.UserID,
		Email:       claims.Email,
		ExpiresAt:   claims.ExpiresAt,
	}

	gateway.emit(current)
	return nil
}

func (gateway *LocalGateway) OAuthURL(provider string) (string, error) {
	return gateway.auth.OAuthURL(provider, "/")
}

func (gateway *LocalGateway) SignOut(ctx context.Context) error {
	gateway.emit(nil)
	return nil
}

func (gateway *LocalGateway) SendPasswordResetEmail(ctx context.Context, email string) error {
	_, _, err := gateway.auth.SendRecoveryPasswordToken(ctx, email)
	return err
}

func (gateway *LocalGateway) emit(current *session.Session) {
	gateway.mu.Lock()
	gateway.current = current
	listeners := make([]func(*session.Session), 0, len(gateway.listeners))
	for _, listener := range gateway.listeners {
		listeners = append(listeners, listener)
	}
	gateway.mu.Unlock()

	for _, listener := range listeners {
		listener(current)
	}
}
