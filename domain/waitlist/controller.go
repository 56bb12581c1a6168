package waitlist

import (
	"time"

	"github.com/schoolpilot/waitlist-api/config/router"
	"github.com/schoolpilot/waitlist-api/internal/events"
	"github.com/schoolpilot/waitlist-api/internal/log"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
	"github.com/schoolpilot/waitlist-api/pkg/ratelimit"
	"gorm.io/gorm"
)

// NewWaitlistController mounts the public signup endpoint. Reads live on the
// admin surface behind the session gate.
func NewWaitlistController(
	db *gorm.DB,
	logger *log.Logger,
	notifications NotificationSignup,
	bus *events.Bus,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"WaitlistController",
		"v1",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewWaitlistRepository(db)
			service := NewWaitlistService(logger, repository, notifications, bus)

			signupLimiter := createSignupRateLimiter()

			rs.AddPostHandler(c, signupLimiter, "", joinWaitlistHandler(service))
		},
	)
}

func createSignupRateLimiter() ratelimit.RateLimiter {
	// The landing-page form is the only caller; generous but bounded.
	const signupRequestsPerMinute = 30

	config := &ratelimit.RateLimitConfig{
		Requests: signupRequestsPerMinute,
		Window:   time.Minute,
		Redis:    nil,
		Logger:   nil,
	}

	return ratelimit.NewRateLimiter(config)
}

func joinWaitlistHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req JoinWaitlistRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		response, err := service.JoinWaitlist(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.CreatedResult(response, "Waitlist entry")
	}
}
