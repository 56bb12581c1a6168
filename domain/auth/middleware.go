package auth

import (
	"net/http"
	"strings"

	"github.com/schoolpilot/waitlist-api/config/router"
)

const (
	// AdminPrefix covers the whole operator surface.
	AdminPrefix = "/v1/admin"

	// LoginPath renders/handles login and is the redirect target for
	// unauthenticated admin requests.
	LoginPath = "/v1/admin/login"

	// DashboardPath is where an already-authenticated visit to the login
	// path gets redirected.
	DashboardPath = "/v1/admin/dashboard"
)

// Gate protects admin-prefixed routes. State machine per request:
//
//	no token  + path != login -> redirect to login
//	no token  + path == login -> proceed
//	bad token                 -> clear cookie, redirect to login
//	valid     + path == login -> redirect to dashboard
//	valid     + path != login -> proceed
func Gate(sessions *Sessions) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		isLoginPath := c.Request.URL.Path == LoginPath

		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			if isLoginPath {
				c.Next()
				return
			}

			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		if _, err := sessions.Verify(token); err != nil {
			clearSessionCookie(c)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		if isLoginPath {
			c.Redirect(http.StatusFound, DashboardPath)
			c.Abort()
			return
		}

		c.Next()
	}
}

// PrefixGate applies the gate to every request under the admin prefix before
// routing, so an unregistered admin path redirects to login instead of
// returning a 404. Register it globally before mounting controllers; the
// per-route Gate attachments stay as defense in depth.
func PrefixGate(sessions *Sessions) router.MiddlewareFunc {
	gate := Gate(sessions)

	return func(c *router.RequestContext) {
		if strings.HasPrefix(c.Request.URL.Path, AdminPrefix) {
			gate(c)
			return
		}

		c.Next()
	}
}

func setSessionCookie(c *router.RequestContext, token string) {
	c.SetCookie(SessionCookieName, token, int(SessionTTL.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *router.RequestContext) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
