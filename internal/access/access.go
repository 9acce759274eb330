// Package access decides whether a given session may reach a protected
// view or mutation.  It is a pure function of (identity, role,
// requirement): it performs no I/O and never mutates the session, so
// tests can exercise every outcome with fixed values.  The HTTP layer
// translates the tagged Decision into responses; nothing in this
// package knows about HTTP.
package access

import "strings"

// Role is the typed privilege level of a user.  Exactly one role is
// attached to every account.
type Role string

const (
	RoleStudent   Role = "STUDENT"   // default, least privileged
	RoleModerator Role = "MODERATOR" // may transition applications and write feedback
	RoleAdmin     Role = "ADMIN"     // may manage users and scholarship listings
)

// ParseRole maps a raw role string to a typed Role.  Unknown, empty or
// unresolved values collapse to RoleStudent: an identity whose role
// cannot be established is always treated as least privileged, never
// as admin.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleModerator:
		return RoleModerator
	case RoleAdmin:
		return RoleAdmin
	}
	return RoleStudent
}

// CanModerate reports whether the role may transition application
// statuses and write feedback.  Admins inherit moderator powers.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// Session is the caller's identity as seen by the gate.  RoleResolved
// distinguishes "we know the role" from "the role lookup has not
// finished": the gate refuses to Allow or Deny on an unresolved role
// so callers cannot leak a protected view during resolution and cannot
// mistake "still loading" for "denied".
type Session struct {
	Authenticated bool   // an identity is present
	Email         string // identity email (empty when unauthenticated)
	Role          Role   // resolved role; meaningful only when RoleResolved
	RoleResolved  bool   // whether Role has been established
}

// Anonymous returns the session of an unauthenticated caller.
func Anonymous() Session { return Session{} }

// Resolved returns an authenticated session with a known role.
func Resolved(email string, role Role) Session {
	return Session{Authenticated: true, Email: email, Role: role, RoleResolved: true}
}

// Requirement declares what a protected view or mutation demands.  The
// zero value demands nothing; build one with Authenticated or Roles.
type Requirement struct {
	authOnly bool
	roles    map[Role]bool
}

// Authenticated requires any signed-in identity, regardless of role.
func Authenticated() Requirement {
	return Requirement{authOnly: true}
}

// Roles requires a signed-in identity holding one of the given roles.
func Roles(rs ...Role) Requirement {
	set := make(map[Role]bool, len(rs))
	for _, r := range rs {
		set[r] = true
	}
	return Requirement{roles: set}
}

// Decision is the tagged outcome of an access check.
type Decision int

const (
	// Allow grants access to the protected resource.
	Allow Decision = iota
	// Deny refuses an authenticated identity whose role is insufficient.
	Deny
	// RedirectToLogin refuses an unauthenticated caller; the transport
	// must preserve the originally requested location so the login flow
	// can return there.
	RedirectToLogin
	// Pending means the role is not yet resolved and a role-gated check
	// cannot be answered.  Callers must hold a neutral state; treating
	// Pending as either Allow or Deny is a bug.
	Pending
)

// String names the decision for logs and tests.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case RedirectToLogin:
		return "redirect-to-login"
	case Pending:
		return "pending"
	}
	return "unknown"
}

// Evaluate applies the requirement to the session.  No identity always
// yields RedirectToLogin.  An authenticated identity satisfies an
// auth-only requirement immediately.  Role requirements demand a
// resolved role: unresolved yields Pending (never a transient Allow),
// a resolved role outside the required set yields Deny.
func Evaluate(s Session, req Requirement) Decision {
	if !s.Authenticated {
		return RedirectToLogin
	}
	if req.authOnly || len(req.roles) == 0 {
		return Allow
	}
	if !s.RoleResolved {
		return Pending
	}
	if req.roles[s.Role] {
		return Allow
	}
	return Deny
}
