package application

import (
	"context"
	"testing"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/session"
)

func TestLocalGatewayEmitsToAllListeners(t *testing.T) {
	gateway := NewLocalGateway(nil)

	var first, second []*session.Session
	unsubFirst, err := gateway.OnAuthStateChange(func(s *session.Session) { first = append(first, s) })
	if err != nil {
		t.Fatalf("OnAuthStateChange() error: %v", err)
	}
	if _, err := gateway.OnAuthStateChange(func(s *session.Session) { second = append(second, s) }); err != nil {
		t.Fatalf("OnAuthStateChange() error: %v", err)
	}

	current := &session.Session{AccessToken: "t", UserID: "u1"}
	gateway.emit(current)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("emit reached %d/%d listeners, want 1/1", len(first), len(second))
	}

	got, err := gateway.CurrentSession(context.Background())
	if err != nil {
		t.Fatalf("CurrentSession() error: %v", err)
	}
	if got != current {
		t.Errorf("CurrentSession() = %+v, want the emitted session", got)
	}

	unsubFirst()
	gateway.emit(nil)

	if len(first) != 1 {
		t.Errorf("unsubscribed listener still heard %d emits", len(first)-1)
	}
	if len(second) != 2 || second[1] != nil {
		t.Errorf("remaining listener missed the nil emit: %v", second)
	}
}

func TestLocalGatewaySignOutClearsSession(t *testing.T) {
	gateway := NewLocalGateway(nil)
	gateway.emit(&session.Session{AccessToken: "t", UserID: "u1"})

	if err := gateway.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut() error: %v", err)
	}

	got, err := gateway.CurrentSession(context.Background())
	if err != nil {
		t.Fatalf("CurrentSession() error: %v", err)
	}
	if got != nil {
		t.Errorf("CurrentSession() = %+v after sign-out, want nil", got)
	}
}
