// Package dashboard hosts the role-scoped services behind the admin,
// pharmacy and delivery views. Each service re-checks the session role on
// every call; the backend enforces the same rule, this layer just fails fast
// with a typed error before any request is made.
package dashboard

import (
	"github.com/ymgs-pharma/storefront/internal/guard"
	"github.com/ymgs-pharma/storefront/pkg/enums"
	pkgerrors "github.com/ymgs-pharma/storefront/pkg/errors"
)

func requireRole(sess guard.Session, role enums.Role) error {
	decision := guard.Decide(sess, guard.Rule{Role: role, RequiresProfile: true})
	if decision.Verdict == guard.Allow {
		return nil
	}
	if decision.Target == guard.PathLogin {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "access denied").
		WithDetails(map[string]string{"redirect": decision.Target})
}
