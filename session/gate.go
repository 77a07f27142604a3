package session

import (
	"errors"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

var ErrUnauthenticated = errors.New("no authenticated user")

const LoginRoute = "/login"

type Action int

const (
	// Wait: identity is still resolving, make no decision yet.
	Wait Action = iota
	Render
	RedirectLogin
	RedirectDashboard
)

type Decision struct {
	Action Action
	// Route is the redirect target. For RedirectLogin it is the login
	// route; ReturnTo preserves the originally requested path.
	Route    string
	ReturnTo string
}

// Decide is the authorization gate for protected views. It is a pure
// function of its inputs: the same tuple always yields the same decision.
func Decide(state State, profileLoading bool, role domain.Role, allowedRoles []domain.Role, requestedPath string) Decision {
	if state == Initializing || (state == Authenticated && profileLoading) {
		return Decision{Action: Wait}
	}

	if state != Authenticated {
		return Decision{Action: RedirectLogin, Route: LoginRoute, ReturnTo: requestedPath}
	}

	if len(allowedRoles) > 0 && !roleAllowed(role, allowedRoles) {
		return Decision{Action: RedirectDashboard, Route: role.DashboardRoute()}
	}

	return Decision{Action: Render}
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
