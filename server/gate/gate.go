// Package gate decides what to do with a page navigation before anything is
// rendered: allow it, bounce it to /login, or bounce it to /dashboard.
// The same decision used to be split between an edge middleware (auth only)
// and client-side conditionals (role only); here both run at the edge.
package gate

import (
	"strings"

	"github.com/uright/uright/server/userdb"
)

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectDashboard
	RedirectOnboarding
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	case RedirectOnboarding:
		return "redirect-onboarding"
	}
	return "unknown"
}

// authPrefixes are reachable only when logged out.
var authPrefixes = []string{
	"/login",
	"/register",
	"/forgot-password",
	"/verify-email",
}

// protectedPrefixes require a session, whatever the role.
var protectedPrefixes = []string{
	"/dashboard",
	"/associations",
	"/members",
	"/payments",
	"/events",
	"/communications",
	"/finance",
	"/reports",
	"/settings",
	"/users",
}

// RoleRoutes is the per-role page allow-list.
var RoleRoutes = map[userdb.Role][]string{
	userdb.RoleSuperadmin: {"/dashboard", "/associations", "/members", "/payments", "/events", "/communications", "/finance", "/reports", "/settings", "/users"},
	userdb.RoleAdmin:      {"/dashboard", "/associations", "/members", "/payments", "/events", "/communications", "/finance", "/reports", "/settings"},
	userdb.RoleTreasurer:  {"/dashboard", "/payments", "/finance", "/reports"},
	userdb.RoleMember:     {"/dashboard"},
}

// Visitor is what the gate knows about the caller. A nil Visitor means no
// valid session token came with the request.
type Visitor struct {
	Role               userdb.Role
	OnboardingComplete bool
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Decide is the whole page-gate policy.
// Unauthenticated + protected page -> login.
// Authenticated + auth-only page -> dashboard.
// Authenticated + page outside the role's allow-list -> dashboard.
// Everything else (marketing pages, assets) passes through.
func Decide(path string, v *Visitor) Decision {
	// A session carrying a role we don't recognize gates like no session at
	// all. Redirecting it to /dashboard would loop, since no allow-list
	// contains /dashboard for it.
	if v != nil && !v.Role.IsValid() {
		v = nil
	}
	if hasPrefix(path, authPrefixes) {
		if v != nil {
			return RedirectDashboard
		}
		return Allow
	}
	if hasPrefix(path, []string{"/onboarding"}) {
		if v == nil {
			return RedirectLogin
		}
		if v.OnboardingComplete {
			return RedirectDashboard
		}
		return Allow
	}
	if hasPrefix(path, protectedPrefixes) {
		if v == nil {
			return RedirectLogin
		}
		if !v.OnboardingComplete {
			return RedirectOnboarding
		}
		if !hasPrefix(path, RoleRoutes[v.Role]) {
			return RedirectDashboard
		}
		return Allow
	}
	return Allow
}
