package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/schoolpilot/waitlist-api/config/router"
	"github.com/schoolpilot/waitlist-api/internal/log"
	"github.com/stretchr/testify/assert"
)

func newGatedRouter(t *testing.T, sessions *Sessions) *router.RouterService {
	t.Helper()

	logger := log.NewLoggerWithJSONOutput()
	rs := router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})

	gate := Gate(sessions)

	ctrl := router.NewVersionedRESTController("GatedAdmin", "v1", "/admin", func(rs *router.RouterService, c *router.RESTController) {
		rs.AddGetHandler(c, nil, "/dashboard", func(ctx *router.RequestContext) *router.ServiceResult {
			return router.OKResult("dashboard", "ok")
		}, gate)

		rs.AddGetHandler(c, nil, "/login", func(ctx *router.RequestContext) *router.ServiceResult {
			return router.OKResult("login", "ok")
		}, gate)
	})

	rs.MountController(ctrl)
	return rs
}

func get(rs *router.RouterService, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	}

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func TestGate_NoTokenRedirectsToLogin(t *testing.T) {
	sessions := NewSessions("test-secret")
	rs := newGatedRouter(t, sessions)

	w := get(rs, DashboardPath, "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestGate_NoTokenOnLoginPathProceeds(t *testing.T) {
	sessions := NewSessions("test-secret")
	rs := newGatedRouter(t, sessions)

	w := get(rs, LoginPath, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGate_ValidTokenProceeds(t *testing.T) {
	sessions := NewSessions("test-secret")
	rs := newGatedRouter(t, sessions)

	token, err := sessions.Issue("operator")
	assert.NoError(t, err)

	w := get(rs, DashboardPath, token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGate_ValidTokenOnLoginPathRedirectsToDashboard(t *testing.T) {
	sessions := NewSessions("test-secret")
	rs := newGatedRouter(t, sessions)

	token, err := sessions.Issue("operator")
	assert.NoError(t, err)

	w := get(rs, LoginPath, token)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, DashboardPath, w.Header().Get("Location"))
}

func TestGate_InvalidTokenClearsCookieAndRedirects(t *testing.T) {
	sessions := NewSessions("test-secret")
	rs := newGatedRouter(t, sessions)

	w := get(rs, DashboardPath, "tampered-token")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))

	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value == "" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the session cookie to be cleared")
}

func newPrefixGatedRouter(t *testing.T, sessions *Sessions) *router.RouterService {
	t.Helper()

	logger := log.NewLoggerWithJSONOutput()
	rs := router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})

	rs.Use(PrefixGate(sessions))

	ctrl := router.NewVersionedRESTController("GatedAdmin", "v1", "/admin", func(rs *router.RouterService, c *router.RESTController) {
		rs.AddGetHandler(c, nil, "/dashboard", func(ctx *router.RequestContext) *router.ServiceResult {
			return router.OKResult("dashboard", "ok")
		})
	})

	rs.MountController(ctrl)
	return rs
}

func TestPrefixGate_UnknownAdminPathRedirectsToLogin(t *testing.T) {
	sessions := NewSessions("test-secret")
	rs := newPrefixGatedRouter(t, sessions)

	w := get(rs, "/v1/admin/settings", "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestPrefixGate_UnknownAdminPathWithValidTokenFallsThrough(t *testing.T) {
	sessions := NewSessions("test-secret")
	rs := newPrefixGatedRouter(t, sessions)

	token, err := sessions.Issue("operator")
	assert.NoError(t, err)

	w := get(rs, "/v1/admin/settings", token)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrefixGate_CoversRegisteredRoutes(t *testing.T) {
	sessions := NewSessions("test-secret")
	rs := newPrefixGatedRouter(t, sessions)

	w := get(rs, DashboardPath, "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))

	token, err := sessions.Issue("operator")
	assert.NoError(t, err)

	w = get(rs, DashboardPath, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPrefixGate_IgnoresNonAdminPaths(t *testing.T) {
	sessions := NewSessions("test-secret")
	rs := newPrefixGatedRouter(t, sessions)

	w := get(rs, "/v1/waitlist", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestGate_ExpiredTokenTreatedAsNoToken(t *testing.T) {
	past := time.Now().Add(-8 * 24 * time.Hour)
	issuer := NewSessions("test-secret").WithTimeFunc(func() time.Time { return past })

	token, err := issuer.Issue("operator")
	assert.NoError(t, err)
	assert.True(t, strings.Count(token, ".") == 2)

	rs := newGatedRouter(t, NewSessions("test-secret"))

	w := get(rs, DashboardPath, token)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}
