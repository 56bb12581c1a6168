package notifications

import (
	"github.com/schoolpilot/waitlist-api/config/router"
	"github.com/schoolpilot/waitlist-api/internal/events"
	"github.com/schoolpilot/waitlist-api/internal/log"
	"github.com/schoolpilot/waitlist-api/pkg/utils"
	"gorm.io/gorm"
)

type NotificationServiceFactory interface {
	CreateService() NotificationService
	CreateController() *router.RESTController
}

type DefaultNotificationServiceFactory struct {
	db     *gorm.DB
	logger *log.Logger
	bus    *events.Bus
}

func NewNotificationServiceFactory(db *gorm.DB, logger *log.Logger, bus *events.Bus) NotificationServiceFactory {
	return &DefaultNotificationServiceFactory{
		db:     db,
		logger: logger,
		bus:    bus,
	}
}

func (f *DefaultNotificationServiceFactory) CreateService() NotificationService {
	repository := NewNotificationRepository(f.db)
	return NewNotificationService(f.logger, repository, f.createDeliveryProvider(), f.bus)
}

func (f *DefaultNotificationServiceFactory) CreateController() *router.RESTController {
	return NewNotificationController(f.db, f.logger, f.bus)
}

// createDeliveryProvider picks the webhook provider when an endpoint is
// configured; otherwise broadcasts are log-only.
func (f *DefaultNotificationServiceFactory) createDeliveryProvider() DeliveryProvider {
	if url := utils.GetEnvTrimmed("BROADCAST_WEBHOOK_URL"); url != "" {
		f.logger.Info("Broadcast delivery via webhook", "url", url)
		return NewWebhookProvider(url, f.logger)
	}

	return NewLogProvider(f.logger)
}
