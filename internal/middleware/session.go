package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/landing-page-manager/internal/auth"
)

// SessionValidator is the slice of the session repository the page
// gate needs.
type SessionValidator interface {
	Validate(ctx context.Context, token string, userID uint64) (bool, error)
}

// loginRedirect sends the browser to the login entry point, carrying
// the originally requested path in the redirectedFrom parameter so
// the client can resume after a successful login.
func loginRedirect(c echo.Context, loginPath string) error {
	q := url.Values{}
	q.Set("redirectedFrom", c.Request().URL.Path)
	return c.Redirect(http.StatusFound, loginPath+"?"+q.Encode())
}

// EdgeGate returns the coarse authorization check applied in front of
// the whole admin prefix. It only requires that a syntactically
// present, non-empty token travels with the request; it performs NO
// store lookup. That is a deliberate cost/latency tradeoff for a
// network edge: an expired or revoked token that is merely present
// still passes here and is caught by RequireSession before anything
// runs. Keep both gates on admin routes.
func EdgeGate(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.HasAuthCookie(c.Request()) {
				return loginRedirect(c, loginPath)
			}
			return next(c)
		}
	}
}

// RequireSession returns the full per-request authorization check: it
// decodes the auth cookie and verifies against the session store that
// a matching, unexpired row exists for that token and user. On any
// failure the request is redirected to the login entry point rather
// than answered with an in-page error. On success the user id is
// stored in the echo context under "user_id" for handlers.
func RequireSession(sessions SessionValidator, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, userID, ok := auth.ReadAuthCookie(c.Request())
			if !ok {
				return loginRedirect(c, loginPath)
			}
			valid, err := sessions.Validate(c.Request().Context(), token, userID)
			if err != nil {
				// A storage failure must not let the request through; log and
				// treat the session as invalid.
				c.Logger().Errorf("session validate failed: %v", err)
				return loginRedirect(c, loginPath)
			}
			if !valid {
				return loginRedirect(c, loginPath)
			}
			c.Set("user_id", userID)
			return next(c)
		}
	}
}
