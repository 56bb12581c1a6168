package notifications

import (
	"time"

	"github.com/schoolpilot/waitlist-api/config/router"
	"github.com/schoolpilot/waitlist-api/internal/events"
	"github.com/schoolpilot/waitlist-api/internal/log"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
	"github.com/schoolpilot/waitlist-api/pkg/ratelimit"
	"gorm.io/gorm"
)

// NewNotificationController mounts the public subscribe endpoint. Broadcasts
// and subscriber reads live on the admin surface behind the session gate.
func NewNotificationController(
	db *gorm.DB,
	logger *log.Logger,
	bus *events.Bus,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"NotificationController",
		"v1",
		"/notifications",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewNotificationRepository(db)
			service := NewNotificationService(logger, repository, nil, bus)

			subscribeLimiter := createSubscribeRateLimiter()

			rs.AddPostHandler(c, subscribeLimiter, "/subscribe", subscribeHandler(service))
		},
	)
}

func createSubscribeRateLimiter() ratelimit.RateLimiter {
	const subscribeRequestsPerMinute = 30

	config := &ratelimit.RateLimitConfig{
		Requests: subscribeRequestsPerMinute,
		Window:   time.Minute,
		Redis:    nil,
		Logger:   nil,
	}

	return ratelimit.NewRateLimiter(config)
}

func subscribeHandler(service NotificationService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SubscribeRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		if err := service.Subscribe(ctx.Request.Context(), req.Email); err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(nil, "Subscribed for launch notifications")
	}
}
