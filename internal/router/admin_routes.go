package router

import (
	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/access"
	"github.com/scholarbridge/scholarship-portal/internal/handler"
	"github.com/scholarbridge/scholarship-portal/internal/middleware"
)

// RegisterModerator registers routes reserved for the moderation
// override.  Admins inherit moderator powers, so both roles are
// admitted.
func RegisterModerator(e *echo.Echo, reviews *handler.ReviewHandler, jwtSecret string) {
	g := e.Group("")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(access.RoleModerator, access.RoleAdmin))

	// The moderator review table.
	g.GET("/all/reviews", reviews.ListAll)
}

// RegisterAdmin registers user management and catalog management.
// Admin only; a student or moderator reaching these paths gets the
// denied screen, never a partial view.
func RegisterAdmin(
	e *echo.Echo,
	users *handler.AdminUserHandler,
	scholarships *handler.AdminScholarshipHandler,
	jwtSecret string,
) {
	g := e.Group("")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(access.RoleAdmin))

	// User management.
	g.GET("/users", users.List)
	g.DELETE("/users/:id", users.Delete)
	g.PATCH("/user/:email/role", users.UpdateRole)

	// Catalog management.  The admin table uses its own listing path so
	// the cached public browse routes stay untouched.
	g.GET("/adminScholarships", scholarships.ListAll)
	g.POST("/scholarships", scholarships.Create)
	g.PATCH("/scholarships/:id", scholarships.Update)
	g.DELETE("/scholarships/:id", scholarships.Delete)
}
