package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/scholarbridge/scholarship-portal/internal/access"
)

// sessionFrom rebuilds the access gate's view of the caller from the
// context values stored by JWTAuth.  When JWTAuth did not run (or
// rejected the request) no email is present and the session is
// anonymous.
func sessionFrom(c echo.Context) access.Session {
	email, _ := c.Get("email").(string)
	role, ok := c.Get("role").(access.Role)
	if email == "" {
		return access.Anonymous()
	}
	if !ok {
		// authenticated but role never parsed; leave it unresolved so a
		// role-gated check cannot accidentally allow
		return access.Session{Authenticated: true, Email: email}
	}
	return access.Resolved(email, role)
}

// Require returns a middleware that applies the given access
// requirement to each request and renders the gate's decision:
// Allow passes through, RedirectToLogin becomes a 401 carrying the
// originally requested path (so the login flow can return the user
// there), Deny becomes a 403 with the support affordances of the
// portal's denied screen, and Pending refuses with 403 but names the
// role as unresolved so the failure is distinguishable from a real
// denial.
func Require(req access.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch access.Evaluate(sessionFrom(c), req) {
			case access.Allow:
				return next(c)
			case access.RedirectToLogin:
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":    "sign in required",
					"redirect": c.Request().RequestURI,
				})
			case access.Pending:
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "role not resolved",
				})
			default: // access.Deny
				return c.JSON(http.StatusForbidden, echo.Map{
					"error":   "forbidden",
					"actions": []string{"/login", "/", "/support"},
				})
			}
		}
	}
}

// RequireSignIn admits any authenticated identity regardless of role.
func RequireSignIn() echo.MiddlewareFunc {
	return Require(access.Authenticated())
}

// RequireRole admits only identities holding one of the given roles.
func RequireRole(roles ...access.Role) echo.MiddlewareFunc {
	return Require(access.Roles(roles...))
}
