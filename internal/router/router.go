// Package router defines how HTTP routes are registered for the API.
// Reads are public; every mutating route and the delete previews sit
// behind the JWT middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/pojisteni/insurance-agency/internal/handler"
	"github.com/pojisteni/insurance-agency/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance. Currently it exposes only a health
// check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes under /v1/auth and
// the protected /v1/me endpoint. The rate limiter guards the auth
// group against credential stuffing; pass a pass-through middleware to
// disable it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints:
// paginated lists, detail views and the PDF summary report.
func RegisterPublic(e *echo.Echo, ph *handler.PolicyHolderHandler, po *handler.PolicyHandler,
	ev *handler.EventHandler, rp *handler.ReportHandler) {
	e.GET("/v1/policyholders", ph.List)
	e.GET("/v1/policyholders/:id", ph.Detail)
	e.GET("/v1/policies", po.List)
	e.GET("/v1/policies/:id", po.Detail)
	e.GET("/v1/events", ev.List)
	e.GET("/v1/events/:id", ev.Detail)
	e.GET("/v1/report", rp.Summary)
}

// RegisterProtected registers every mutating route behind the JWT
// middleware. The GET .../deletion routes are the confirmation
// previews of the two-phase delete and are protected like the deletes
// they precede.
func RegisterProtected(e *echo.Echo, jwtSecret string, ph *handler.PolicyHolderHandler,
	po *handler.PolicyHandler, ev *handler.EventHandler) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	g.POST("/policyholders", ph.Create)
	g.PUT("/policyholders/:id", ph.Update)
	g.GET("/policyholders/:id/deletion", ph.DeletePreview)
	g.DELETE("/policyholders/:id", ph.Delete)

	g.POST("/policyholders/:id/policies", po.Create)
	g.PUT("/policies/:id", po.Update)
	g.GET("/policies/:id/deletion", po.DeletePreview)
	g.DELETE("/policies/:id", po.Delete)

	g.POST("/policyholders/:id/events", ev.Create)
	g.PUT("/events/:id", ev.Update)
	g.GET("/events/:id/deletion", ev.DeletePreview)
	g.DELETE("/events/:id", ev.Delete)
}
