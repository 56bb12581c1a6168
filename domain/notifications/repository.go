package notifications

import (
	"context"
	"errors"

	"github.com/schoolpilot/waitlist-api/internal/models"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=notifications

type NotificationRepository interface {
	// CreateSubscriber persists a new subscriber. The unique index on email
	// surfaces duplicates as a conflict; there is no pre-insert read.
	CreateSubscriber(ctx context.Context, subscriber *models.NotificationSubscriber) (*models.NotificationSubscriber, error)
	// GetAllSubscribers returns all subscribers, newest first.
	GetAllSubscribers(ctx context.Context) ([]*models.NotificationSubscriber, error)
	// CountSubscribers returns the number of subscribers.
	CountSubscribers(ctx context.Context) (int64, error)
	// CreateSentNotification appends a broadcast audit row.
	CreateSentNotification(ctx context.Context, record *models.SentNotification) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (nr *notificationRepository) CreateSubscriber(ctx context.Context, subscriber *models.NotificationSubscriber) (*models.NotificationSubscriber, error) {
	if err := nr.db.WithContext(ctx).Create(subscriber).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.NewConflictError("this email is already subscribed for notifications", err)
		}
		return nil, apperrors.NewDatabaseError("unable to create notification subscriber", err)
	}

	return subscriber, nil
}

func (nr *notificationRepository) GetAllSubscribers(ctx context.Context) ([]*models.NotificationSubscriber, error) {
	var subscribers []*models.NotificationSubscriber

	if err := nr.db.WithContext(ctx).Order("created_at DESC").Find(&subscribers).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to fetch notification subscribers", err)
	}

	return subscribers, nil
}

func (nr *notificationRepository) CountSubscribers(ctx context.Context) (int64, error) {
	var count int64

	if err := nr.db.WithContext(ctx).Model(&models.NotificationSubscriber{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to count notification subscribers", err)
	}

	return count, nil
}

func (nr *notificationRepository) CreateSentNotification(ctx context.Context, record *models.SentNotification) error {
	if err := nr.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperrors.NewDatabaseError("unable to record sent notification", err)
	}

	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
