package waitlist

import (
	"github.com/schoolpilot/waitlist-api/config/router"
	"github.com/schoolpilot/waitlist-api/internal/events"
	"github.com/schoolpilot/waitlist-api/internal/log"
	"gorm.io/gorm"
)

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateController() *router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	db            *gorm.DB
	logger        *log.Logger
	notifications NotificationSignup
	bus           *events.Bus
}

func NewWaitlistServiceFactory(db *gorm.DB, logger *log.Logger, notifications NotificationSignup, bus *events.Bus) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		db:            db,
		logger:        logger,
		notifications: notifications,
		bus:           bus,
	}
}

func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	repository := NewWaitlistRepository(f.db)
	return NewWaitlistService(f.logger, repository, f.notifications, f.bus)
}

func (f *DefaultWaitlistServiceFactory) CreateController() *router.RESTController {
	return NewWaitlistController(f.db, f.logger, f.notifications, f.bus)
}
