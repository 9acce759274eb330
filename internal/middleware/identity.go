package middleware

// identity.go defines helper functions shared across middleware files.
// The rate limiter keys buckets per caller; these helpers extract a
// stable caller identifier from the context values stored by JWTAuth,
// falling back to "guest" for unauthenticated traffic.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// callerID returns the authenticated user's email when present, the
// numeric user ID as a fallback, and "guest" otherwise.
func callerID(c echo.Context) string {
	if v, ok := c.Get("email").(string); ok && v != "" {
		return v
	}
	if v := c.Get("user_id"); v != nil {
		return fmt.Sprint(v)
	}
	return "guest"
}
