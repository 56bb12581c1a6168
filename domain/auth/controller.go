package auth

import (
	"crypto/subtle"
	"time"

	"github.com/schoolpilot/waitlist-api/config/router"
	"github.com/schoolpilot/waitlist-api/internal/log"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
	"github.com/schoolpilot/waitlist-api/pkg/factory"
	"github.com/schoolpilot/waitlist-api/pkg/ratelimit"
)

// Credentials are the configured admin username/password. Comparison is
// exact match; there is a single operator account and no user table.
type Credentials struct {
	Username string
	Password string
}

func NewAuthController(
	credentials *Credentials,
	sessions *Sessions,
	logger *log.Logger,
	cache factory.Cache,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"AuthController",
		"v1",
		"/admin/login",
		func(rs *router.RouterService, c *router.RESTController) {
			loginLimiter := createLoginRateLimiter(cache)

			rs.AddPostHandler(c, loginLimiter, "", loginHandler(credentials, sessions))

			// GET login is left to the gate: unauthenticated requests
			// proceed to a render hint, authenticated ones bounce to the
			// dashboard.
			rs.AddGetHandler(c, loginLimiter, "", loginPageHandler(), Gate(sessions))
		},
	)
}

func createLoginRateLimiter(cache factory.Cache) ratelimit.RateLimiter {
	// Credential guessing is the one abuse vector on this surface, so the
	// login endpoint gets a much tighter budget than the default.
	const loginRequestsPerMinute = 5

	limiterFactory := factory.NewDefaultRateLimiterFactory(loginRequestsPerMinute, time.Minute, cache, nil)
	return limiterFactory.CreateRateLimiter()
}

func loginHandler(credentials *Credentials, sessions *Sessions) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req LoginRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind login request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		if !matches(credentials, req.Username, req.Password) {
			logger.Warn("Admin login rejected", "username", req.Username)
			return router.UnauthorizedResult("Invalid credentials")
		}

		token, err := sessions.Issue(req.Username)
		if err != nil {
			logger.Error("Failed to issue session credential", "error", err)
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		setSessionCookie(ctx, token)
		logger.Info("Admin login succeeded", "username", req.Username)

		return router.OKResult(LoginResponse{Success: true, Token: token}, "Login successful")
	}
}

func loginPageHandler() router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		return router.OKResult(nil, "Submit credentials via POST to log in")
	}
}

func matches(credentials *Credentials, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(credentials.Username), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(credentials.Password), []byte(password)) == 1
	return userOK && passOK
}
