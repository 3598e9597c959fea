// Package guard decides whether a session may enter a protected view and,
// when it may not, where to send it instead.
package guard

import (
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
)

// Well-known redirect targets.
const (
	PathLogin                = "/login"
	PathHome                 = "/"
	PathPharmacyRegistration = "/pharmacy-registration"
	PathDeliveryRegistration = "/delivery-registration"
)

// Verdict is the guard's decision for one navigation attempt.
type Verdict string

const (
	// Allow admits the session into the requested view.
	Allow Verdict = "allow"
	// Redirect sends the session elsewhere; Decision.Target says where.
	Redirect Verdict = "redirect"
)

// Decision is the outcome of a guard check.
type Decision struct {
	Verdict Verdict
	Target  string
}

// Session is the slice of session state the guard inspects.
type Session interface {
	IsAuthenticated() bool
	Profile() *api.UserProfile
}

// Rule describes what a view requires from the session.
type Rule struct {
	// Role the view is restricted to. Empty means any authenticated user.
	Role enums.Role
	// RequiresProfile demands the role's onboarding profile exists. Only
	// meaningful for pharmacist and delivery dashboards; admins never
	// carry one.
	RequiresProfile bool
}

// Decide evaluates a rule against the current session. Anonymous sessions go
// to login, wrong roles go home, and role holders missing their onboarding
// profile go to the matching registration flow.
func Decide(sess Session, rule Rule) Decision {
	if sess == nil || !sess.IsAuthenticated() {
		return Decision{Verdict: Redirect, Target: PathLogin}
	}

	profile := sess.Profile()
	if profile == nil {
		return Decision{Verdict: Redirect, Target: PathLogin}
	}

	if rule.Role != "" && profile.Role != rule.Role {
		return Decision{Verdict: Redirect, Target: PathHome}
	}

	if rule.RequiresProfile {
		switch profile.Role {
		case enums.RolePharmacist:
			if !profile.HasPharmacy {
				return Decision{Verdict: Redirect, Target: PathPharmacyRegistration}
			}
		case enums.RoleDelivery:
			if !profile.HasDeliveryProfile {
				return Decision{Verdict: Redirect, Target: PathDeliveryRegistration}
			}
		}
	}

	return Decision{Verdict: Allow}
}

// Allowed is a convenience wrapper for callers that only need a boolean.
func Allowed(sess Session, rule Rule) bool {
	return Decide(sess, rule).Verdict == Allow
}
