// internal/domain/auth/principal.go
package auth

import "strings"

// Principal is the verified identity attached to a request, or the
// anonymous sentinel when no valid token was presented. The core never
// parses tokens itself; middleware hands a Principal to every usecase.
type Principal struct {
	ID      string
	IsAdmin bool
	IsStaff bool
}

// Anonymous is the sentinel principal for unauthenticated requests.
var Anonymous = Principal{}

func New(id string, isAdmin, isStaff bool) Principal {
	return Principal{ID: strings.TrimSpace(id), IsAdmin: isAdmin, IsStaff: isStaff}
}

// IsAnonymous reports whether the request carried no verified identity.
func (p Principal) IsAnonymous() bool {
	return strings.TrimSpace(p.ID) == ""
}

// IsPrivileged gates catalog and order management: either flag is
// sufficient. Account provisioning checks IsAdmin directly.
func (p Principal) IsPrivileged() bool {
	return p.IsAdmin || p.IsStaff
}
