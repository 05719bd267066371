// Package router defines how HTTP routes are registered for the application.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/landing-page-manager/internal/config"
	"github.com/iliyamo/landing-page-manager/internal/handler"
	"github.com/iliyamo/landing-page-manager/internal/middleware"
)

// loginPath is where unauthenticated admin requests are redirected.
const loginPath = "/login"

// Deps carries everything route registration needs. Handlers are built
// by the caller; the router only decides which middleware guards which
// prefix.
type Deps struct {
	Auth     *handler.AuthHandler
	Configs  *handler.ConfigurationHandler
	Landing  *handler.LandingHandler
	Sessions middleware.SessionValidator

	Redis    *redis.Client
	CacheCfg config.CacheConfig
	RateCfg  config.RateLimitConfig
}

// Register wires all routes onto the Echo instance.
//
// Public surface:
//
//	GET  /healthz               liveness probe
//	GET  /l/:id                 rendered landing page (cached)
//	POST /api/auth/login        rate limited
//	POST /api/auth/register     rate limited
//	POST /api/auth/logout
//
// Authenticated surface (two-tier gate: cookie presence at the group
// edge, then a session store lookup per request):
//
//	GET    /api/auth/me
//	POST   /api/auth/logout-all
//	GET    /admin/configurations        (cached listing)
//	POST   /admin/configurations
//	GET    /admin/configurations/:id
//	PUT    /admin/configurations/:id
//	DELETE /admin/configurations/:id
func Register(e *echo.Echo, d Deps) {
	cache := middleware.NewRedisCache(d.CacheCfg, d.Redis)
	limiter := middleware.NewTokenBucket(d.RateCfg, d.Redis)

	e.GET("/healthz", handler.Health)

	// Public read path. Cached so repeated views of the same landing
	// page skip the database entirely.
	e.GET("/l/:id", d.Landing.Resolve, cache)

	// Credential endpoints take the brunt of abusive traffic, so they
	// sit behind the token bucket.
	authGroup := e.Group("/api/auth")
	authGroup.POST("/login", d.Auth.Login, limiter)
	authGroup.POST("/register", d.Auth.Register, limiter)
	authGroup.POST("/logout", d.Auth.Logout)

	// Session-bound auth endpoints. These skip the edge gate (they are
	// API calls, not pages) but still require a live session.
	sessionGroup := e.Group("/api/auth", middleware.RequireSession(d.Sessions, loginPath))
	sessionGroup.GET("/me", d.Auth.Me)
	sessionGroup.POST("/logout-all", d.Auth.LogoutAll)

	// Admin pages and CRUD. The edge gate rejects cookie-less requests
	// cheaply; RequireSession then verifies the token against the store.
	admin := e.Group("/admin",
		middleware.EdgeGate(loginPath),
		middleware.RequireSession(d.Sessions, loginPath),
	)
	admin.GET("/configurations", d.Configs.List, cache)
	admin.POST("/configurations", d.Configs.Create)
	admin.GET("/configurations/:id", d.Configs.Get)
	admin.PUT("/configurations/:id", d.Configs.Update)
	admin.DELETE("/configurations/:id", d.Configs.Delete)
}
