package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/scholarbridge/scholarship-portal/internal/access"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the token's subject, email and role claims into
// the request context.  The provided secret must match the one used
// when issuing tokens.  This middleware wraps every protected route so
// handlers can read `c.Get("user_id")`, `c.Get("email")` and
// `c.Get("role")`.  The role claim is normalized through
// access.ParseRole, so a token with a missing or unknown role claim is
// treated as STUDENT rather than rejected: fail-closed to the least
// privileged role, never open to a higher one.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":    "missing bearer token",
					"redirect": c.Request().RequestURI,
				})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret; reject other signing methods.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":    "invalid token",
					"redirect": c.Request().RequestURI,
				})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Store identity claims for handlers and downstream middleware.
			c.Set("user_id", claims["sub"])
			email, _ := claims["email"].(string)
			c.Set("email", strings.ToLower(strings.TrimSpace(email)))
			roleClaim, _ := claims["role"].(string)
			c.Set("role", access.ParseRole(roleClaim))
			return next(c)
		}
	}
}
