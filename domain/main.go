package domain

import (
	"github.com/schoolpilot/waitlist-api/config"
	"github.com/schoolpilot/waitlist-api/domain/admin"
	"github.com/schoolpilot/waitlist-api/domain/auth"
	"github.com/schoolpilot/waitlist-api/domain/monitoring"
	"github.com/schoolpilot/waitlist-api/domain/notifications"
	"github.com/schoolpilot/waitlist-api/domain/waitlist"
	"github.com/schoolpilot/waitlist-api/internal/events"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	bus := appConfig.Bus

	notificationFactory := notifications.NewNotificationServiceFactory(appConfig.DB, appConfig.Logger, bus)
	notificationService := notificationFactory.CreateService()

	waitlistFactory := waitlist.NewWaitlistServiceFactory(appConfig.DB, appConfig.Logger, notificationService, bus)
	waitlistService := waitlistFactory.CreateService()

	sessions := auth.NewSessions(appConfig.Auth.SessionSecret)
	credentials := &auth.Credentials{
		Username: appConfig.Auth.AdminUsername,
		Password: appConfig.Auth.AdminPassword,
	}

	// Gate the whole admin prefix ahead of routing so unknown admin paths
	// redirect to login rather than 404. Must precede controller mounting.
	appConfig.RouterService.Use(auth.PrefixGate(sessions))

	adminService := admin.NewAdminService(appConfig.Logger, waitlistService, notificationService, appConfig.Cache)

	// Signup writes announce themselves; the dashboard cache listens instead
	// of the services invalidating pages by path.
	bus.Subscribe(events.WaitlistChanged, func(string) { adminService.InvalidateDashboard() })
	bus.Subscribe(events.SubscribersChanged, func(string) { adminService.InvalidateDashboard() })

	monitoringFactory := monitoring.NewMonitoringControllerFactory(appConfig.DB, appConfig.Logger, appConfig.Cache)

	appConfig.RouterService.MountController(monitoringFactory.CreateController())
	appConfig.RouterService.MountController(waitlistFactory.CreateController())
	appConfig.RouterService.MountController(notificationFactory.CreateController())
	appConfig.RouterService.MountController(auth.NewAuthController(credentials, sessions, appConfig.Logger, appConfig.Cache))
	appConfig.RouterService.MountController(admin.NewAdminController(adminService, sessions, appConfig.Logger))
}
