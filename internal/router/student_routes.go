package router

import (
	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/handler"
	"github.com/scholarbridge/scholarship-portal/internal/middleware"
)

// RegisterStudent registers the signed-in dashboard surface.  Any
// authenticated role may enter; ownership checks happen in the
// handlers because several routes are shared with the moderation
// override (a moderator may list anyone's applications, a student only
// their own).
func RegisterStudent(
	e *echo.Echo,
	apps *handler.ApplicationHandler,
	pay *handler.PaymentHandler,
	reviews *handler.ReviewHandler,
	users *handler.AdminUserHandler,
	jwtSecret string,
) {
	g := e.Group("")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireSignIn())

	// Applications.  GET serves both the student dashboard (?email=)
	// and the moderator review table (no parameter); PATCH serves both
	// the moderator transition/feedback writes and the owner's
	// pending-only self-edit.  The handler dispatches on the body and
	// the caller's role.
	g.POST("/applications", apps.Apply)
	g.GET("/applications", apps.List)
	g.PATCH("/applications/:id", apps.Update)
	g.DELETE("/applications", apps.Delete)

	// Checkout: mint a single-use gateway session for an owned
	// pending/unpaid application.
	g.POST("/create-checkout-session", pay.CreateCheckoutSession)

	// Reviews: author surface.
	g.GET("/reviews", reviews.ListByEmail)
	g.POST("/reviews", reviews.Create)
	g.PATCH("/reviews/:id", reviews.Update)
	// Delete admits the author or the moderation override; the handler
	// checks after loading the record.
	g.DELETE("/all/reviews/:id", reviews.Delete)

	// Role lookup: self, or anyone for the moderation override.  An
	// unknown email reads as student.
	g.GET("/users/:email/role", users.Role)
}
