package service

import "github.com/tradewell/backoffice/internal/core/domain"

// RouteClass classifies an endpoint for authorization purposes.
type RouteClass int

const (
	// RoutePublic needs no identity: registration, login, probes, assets.
	RoutePublic RouteClass = iota
	// RouteAuthenticated is the default class; a valid session is required.
	RouteAuthenticated
	// RouteAdmin additionally requires the ADMIN role.
	RouteAdmin
)

// Decision is the outcome of authorizing one request against a route class.
type Decision int

const (
	// Allow lets the request through.
	Allow Decision = iota
	// RedirectToLogin sends an unauthenticated caller to the login page.
	RedirectToLogin
	// Forbidden rejects an authenticated caller lacking the required role.
	// Never downgraded to a redirect: the caller is known, just not allowed.
	Forbidden
)

// Authorize applies the route-level access rules to the resolved principal
// (nil when the request carries no usable session).
func Authorize(class RouteClass, principal *domain.Principal) Decision {
	switch class {
	case RoutePublic:
		return Allow
	case RouteAdmin:
		if principal == nil {
			return RedirectToLogin
		}
		if !principal.IsAdmin() {
			return Forbidden
		}
		return Allow
	default:
		if principal == nil {
			return RedirectToLogin
		}
		return Allow
	}
}
