package router

import (
	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/handler"
	"github.com/scholarbridge/scholarship-portal/internal/middleware"
)

// RegisterAuth registers the authentication surface.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	// Registration always creates a STUDENT account.
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotate the refresh token and issue a fresh pair.
	g.POST("/refresh", a.Refresh)
	// Issue a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh token in the body or a bearer header;
	// the handler parses the bearer itself so no middleware is needed.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireSignIn())
	auth.GET("/me", a.Me)
}
