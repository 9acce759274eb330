package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing

	"github.com/scholarbridge/scholarship-portal/internal/handler"
)

// RegisterRoutes registers routes that require no authentication at
// all: the health check and the payment gateway callbacks.  The
// callbacks carry no JWT because they originate at the gateway, not in
// a browser session; they authenticate through the single-use checkout
// session token instead.
func RegisterRoutes(e *echo.Echo, health *handler.HealthHandler, pay *handler.PaymentHandler) {
	// Load balancers and monitoring systems probe this endpoint.
	e.GET("/healthz", health.Healthz)

	// Gateway success callback: consumes the session token minted by
	// /create-checkout-session.
	e.PATCH("/payment-success", pay.PaymentSuccess)
	// Gateway failure callback: records the failure, changes nothing.
	e.POST("/payment-error", pay.PaymentError)
}

// RegisterPublic registers the unauthenticated catalog browse routes.
// The optional middleware (response cache, rate limiter) is applied to
// this group only; authenticated dashboards always hit the database so
// derived action flags are never served stale.
func RegisterPublic(e *echo.Echo, s *handler.ScholarshipHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("", mws...)
	// Paged catalog with search and category filters.
	g.GET("/scholarships", s.List)
	// Landing-page picks: lowest application fee first.
	g.GET("/scholarships/top", s.Top)
	// Detail page, reviews included.
	g.GET("/scholarships/:id", s.Get)
}
