package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/schoolpilot/waitlist-api/config/router"
	"github.com/schoolpilot/waitlist-api/domain/auth"
	"github.com/schoolpilot/waitlist-api/domain/notifications"
	"github.com/schoolpilot/waitlist-api/internal/log"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
)

// NewAdminController mounts the operator surface. Every handler sits behind
// the session gate; unauthenticated requests are redirected to login.
func NewAdminController(
	service AdminService,
	sessions *auth.Sessions,
	logger *log.Logger,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"AdminController",
		"v1",
		"/admin",
		func(rs *router.RouterService, c *router.RESTController) {
			gate := auth.Gate(sessions)

			rs.AddGetHandler(c, nil, "/dashboard", dashboardHandler(service), gate)
			rs.AddGetHandler(c, nil, "/waitlist", listWaitlistHandler(service), gate)
			rs.AddGetHandler(c, nil, "/subscribers", listSubscribersHandler(service), gate)
			rs.AddPostHandler(c, nil, "/notifications", sendNotificationHandler(service), gate)
			rs.AddRawGetHandler(c, nil, "/export/waitlist", exportWaitlistHandler(service), gate)
			rs.AddRawGetHandler(c, nil, "/export/subscribers", exportSubscribersHandler(service), gate)
		},
	)
}

func dashboardHandler(service AdminService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		return router.OKResult(service.Dashboard(ctx.Request.Context()), "Dashboard retrieved successfully")
	}
}

func listWaitlistHandler(service AdminService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		entries := service.ListWaitlistEntries(ctx.Request.Context())
		return router.OKResult(entries, "Waitlist entries retrieved successfully")
	}
}

func listSubscribersHandler(service AdminService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		subscribers := service.ListSubscribers(ctx.Request.Context())
		return router.OKResult(subscribers, "Notification subscribers retrieved successfully")
	}
}

func sendNotificationHandler(service AdminService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req notifications.BroadcastRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		response, err := service.SendNotification(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, response.Result)
	}
}

func exportWaitlistHandler(service AdminService) router.MiddlewareFunc {
	return func(ctx *router.RequestContext) {
		logger := router.GetLogger(ctx)

		entries := service.ListWaitlistEntries(ctx.Request.Context())

		serveCSVHeader(ctx, ExportFilename("waitlist", time.Now()))
		if err := WriteWaitlistCSV(ctx.Writer, entries); err != nil {
			logger.Error("Failed to write waitlist CSV export", "error", err)
		}
	}
}

func exportSubscribersHandler(service AdminService) router.MiddlewareFunc {
	return func(ctx *router.RequestContext) {
		logger := router.GetLogger(ctx)

		subscribers := service.ListSubscribers(ctx.Request.Context())

		serveCSVHeader(ctx, ExportFilename("subscribers", time.Now()))
		if err := WriteSubscribersCSV(ctx.Writer, subscribers); err != nil {
			logger.Error("Failed to write subscribers CSV export", "error", err)
		}
	}
}

func serveCSVHeader(ctx *router.RequestContext, filename string) {
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Status(http.StatusOK)
}
