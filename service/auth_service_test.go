package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/errors"
)

func TestVerifyPassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Str0ngEnough!", true},
		{"Another#Pass9word", true},
		{"Short1!", false},
		{"nouppercase1!aaa", false},
		{"NOLOWERCASE1!AAA", false},
		{"NoDigitsHere!!aa", false},
		{"NoSpecials11aaBB", false},
		{"", false},
	}

	for _, c := range cases {
		if got := verifyPassword(c.password); got != c.valid {
			t.Errorf("verifyPassword(%q) = %v, want %v", c.password, got, c.valid)
		}
	}
}

func TestChangePasswordRejectsMalformedToken(t *testing.T) {
	service := NewAuthService(nil, nil, nil)

	_, status, err := service.ChangePassword(context.Background(), domain.PasswordChange{}, "not.a.token")
	if err == nil || err.Error() != errors.InvalidTokenError {
		t.Fatalf("ChangePassword returned %v, want %q", err, errors.InvalidTokenError)
	}
	if status != http.StatusUnauthorized {
		t.Errorf("ChangePassword status = %d, want %d", status, http.StatusUnauthorized)
	}
}
