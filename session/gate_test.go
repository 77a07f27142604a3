package session

import (
	"testing"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name           string
		state          State
		profileLoading bool
		role           domain.Role
		allowed        []domain.Role
		path           string
		want           Decision
	}{
		{
			name:  "initializing waits",
			state: Initializing,
			path:  "/bookings",
			want:  Decision{Action: Wait},
		},
		{
			name:           "authenticated but profile loading waits",
			state:          Authenticated,
			profileLoading: true,
			path:           "/bookings",
			want:           Decision{Action: Wait},
		},
		{
			name:  "unauthenticated redirects to login with return path",
			state: Unauthenticated,
			path:  "/bookings/new",
			want:  Decision{Action: RedirectLogin, Route: LoginRoute, ReturnTo: "/bookings/new"},
		},
		{
			name:    "wrong role lands on own dashboard not login",
			state:   Authenticated,
			role:    domain.Student,
			allowed: []domain.Role{domain.Merchant},
			path:    "/merchant/properties",
			want:    Decision{Action: RedirectDashboard, Route: "/student/dashboard"},
		},
		{
			name:    "allowed role renders",
			state:   Authenticated,
			role:    domain.Merchant,
			allowed: []domain.Role{domain.Merchant},
			path:    "/merchant/properties",
			want:    Decision{Action: Render},
		},
		{
			name:  "no role restriction renders any authenticated user",
			state: Authenticated,
			role:  domain.Student,
			path:  "/profile",
			want:  Decision{Action: Render},
		},
		{
			name:    "unknown role falls back to home dashboard",
			state:   Authenticated,
			role:    domain.Role(""),
			allowed: []domain.Role{domain.Admin},
			path:    "/admin/users",
			want:    Decision{Action: RedirectDashboard, Route: "/"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Decide(c.state, c.profileLoading, c.role, c.allowed, c.path)
			if got != c.want {
				t.Errorf("Decide() = %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	first := Decide(Authenticated, false, domain.Student, []domain.Role{domain.Merchant}, "/merchant/properties")
	for i := 0; i < 10; i++ {
		again := Decide(Authenticated, false, domain.Student, []domain.Role{domain.Merchant}, "/merchant/properties")
		if again != first {
			t.Fatalf("Decide() varied across calls: %+v vs %+v", first, again)
		}
	}
}
